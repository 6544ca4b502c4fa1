package request

import (
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const userAgent = "User-Agent"

// HTTPDoer is the transport used by a Requester. *http.Client satisfies it;
// TLS, proxies and timeouts belong to the supplied implementation.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Requester sends requests for a single exchange client and owns that
// client's throttle state. It is not safe for concurrent use; callers must
// serialise access or use one Requester per goroutine.
type Requester struct {
	HTTPClient HTTPDoer
	Name       string
	UserAgent  string

	minInterval time.Duration
	limiter     *rate.Limiter
	lastRequest time.Time
}

// Item is a temp item for requests
type Item struct {
	Method  string
	Path    string
	Headers map[string]string
	Body    io.Reader
	Verbose bool
}

// Response holds the fully read body of an HTTP response. Body is always
// valid JSON.
type Response struct {
	StatusCode int
	Body       []byte
}

// IsSuccess returns true for 2xx status codes
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= http.StatusOK && r.StatusCode < http.StatusMultipleChoices
}

// Generate defines a closure for functionality outside of the requester to
// generate a new *request.Item. It is called after throttling so nonces and
// signatures are built as late as possible.
type Generate func() (*Item, error)

// RequesterOption is a function option that can be used to configure a
// Requester upon creation.
type RequesterOption func(*Requester)
