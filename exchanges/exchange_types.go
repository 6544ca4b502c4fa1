package exchange

import (
	"net/http"
	"time"

	"github.com/thrasher-corp/gctconnect/exchanges/account"
	"github.com/thrasher-corp/gctconnect/exchanges/nonce"
	"github.com/thrasher-corp/gctconnect/exchanges/request"
)

// DefaultHTTPTimeout is the timeout of the HTTP client built when none is
// supplied
const DefaultHTTPTimeout = time.Second * 15

// Base stores the state shared by every exchange client: credentials, the
// per-credential nonce and the requester holding the throttle state
type Base struct {
	Name        string
	Verbose     bool
	APIURL      string
	Credentials account.Credentials
	Nonce       nonce.Nonce
	*request.Requester
}

// Settings are collected from Options when an exchange client is built
type Settings struct {
	HTTPClient    request.HTTPDoer
	APIURL        string
	Verbose       bool
	UserAgent     string
	RequesterOpts []request.RequesterOption
}

// Option configures an exchange client on construction
type Option func(*Settings)

// WithHTTPClient supplies the transport
func WithHTTPClient(c request.HTTPDoer) Option {
	return func(s *Settings) { s.HTTPClient = c }
}

// WithAPIURL overrides the exchange REST endpoint
func WithAPIURL(u string) Option {
	return func(s *Settings) { s.APIURL = u }
}

// WithVerbose enables request and response logging
func WithVerbose(v bool) Option {
	return func(s *Settings) { s.Verbose = v }
}

// WithUserAgent sets the User-Agent header on every request
func WithUserAgent(ua string) Option {
	return func(s *Settings) { s.UserAgent = ua }
}

// WithRequesterOptions appends requester options after the exchange defaults
// so they take precedence
func WithRequesterOptions(opts ...request.RequesterOption) Option {
	return func(s *Settings) { s.RequesterOpts = append(s.RequesterOpts, opts...) }
}

func newDefaultHTTPClient() *http.Client {
	return &http.Client{Timeout: DefaultHTTPTimeout}
}
