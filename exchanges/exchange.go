package exchange

import (
	"fmt"
	"strings"

	"github.com/thrasher-corp/gctconnect/common"
	"github.com/thrasher-corp/gctconnect/exchanges/account"
	"github.com/thrasher-corp/gctconnect/exchanges/request"
	"github.com/thrasher-corp/gctconnect/log"
)

// Setup initialises the shared client state. defaults are applied before any
// requester options passed through opts.
func (b *Base) Setup(name, defaultURL string, creds account.Credentials, defaults []request.RequesterOption, opts ...Option) {
	s := Settings{APIURL: defaultURL}
	for _, o := range opts {
		o(&s)
	}
	if s.HTTPClient == nil {
		s.HTTPClient = newDefaultHTTPClient()
	}
	reqOpts := append([]request.RequesterOption{}, defaults...)
	if s.UserAgent != "" {
		reqOpts = append(reqOpts, request.WithUserAgent(s.UserAgent))
	}
	reqOpts = append(reqOpts, s.RequesterOpts...)

	if s.Verbose {
		log.Debugf(log.ExchangeSys, "%s client created for %s using %s", name, s.APIURL, creds.String())
	}
	b.Name = name
	b.Verbose = s.Verbose
	b.APIURL = strings.TrimSuffix(s.APIURL, "/")
	b.Credentials = creds
	b.Requester = request.New(name, s.HTTPClient, reqOpts...)
}

// GetName returns the exchange name
func (b *Base) GetName() string {
	return b.Name
}

// AllowAuthenticatedRequest returns nil when credentials are present and
// valid for the exchange, before any nonce is consumed
func (b *Base) AllowAuthenticatedRequest(requiresClientID bool) error {
	if b.Credentials.IsEmpty() {
		return fmt.Errorf("%s %w", b.Name, common.ErrCredentialsUnset)
	}
	if err := b.Credentials.Validate(requiresClientID); err != nil {
		return fmt.Errorf("%s %w: %v", b.Name, common.ErrCredentialsUnset, err)
	}
	return nil
}

// UnsupportedPairError wraps common.ErrPairUnsupported with the exchange name
// and pair
func (b *Base) UnsupportedPairError(p fmt.Stringer) error {
	return fmt.Errorf("%s %w: %s", b.Name, common.ErrPairUnsupported, p)
}
