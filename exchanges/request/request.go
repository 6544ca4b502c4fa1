package request

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/thrasher-corp/gctconnect/common"
	"github.com/thrasher-corp/gctconnect/log"
)

var (
	errRequestSystemIsNil   = errors.New("request system is nil")
	errRequestFunctionIsNil = errors.New("request function is nil")
	errRequestItemNil       = errors.New("request item is nil")
	errInvalidPath          = errors.New("invalid path")
	errHTTPClientIsNil      = errors.New("http client is nil")
)

// New returns a new Requester
func New(name string, httpRequester HTTPDoer, opts ...RequesterOption) *Requester {
	r := &Requester{
		HTTPClient: httpRequester,
		Name:       name,
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// LastRequest returns the time the last response was received
func (r *Requester) LastRequest() time.Time {
	return r.lastRequest
}

// SendPayload throttles, generates the request item, sends it and returns the
// fully read response. The last request time is only updated once a response
// has been received.
func (r *Requester) SendPayload(ctx context.Context, newRequest Generate) (*Response, error) {
	if r == nil {
		return nil, errRequestSystemIsNil
	}
	if newRequest == nil {
		return nil, errRequestFunctionIsNil
	}
	if r.HTTPClient == nil {
		return nil, errHTTPClientIsNil
	}

	if err := Throttle(ctx, r.lastRequest, r.minInterval); err != nil {
		return nil, err
	}
	if r.limiter != nil {
		if err := r.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	item, err := newRequest()
	if err != nil {
		return nil, err
	}
	req, err := item.validateRequest(ctx, r)
	if err != nil {
		return nil, err
	}

	verbose := IsVerbose(ctx, item.Verbose)
	if verbose {
		log.Debugf(log.RequestSys, "%s request path: %s", r.Name, item.Path)
		for k, d := range req.Header {
			log.Debugf(log.RequestSys, "%s request header [%s]: %s", r.Name, k, d)
		}
		log.Debugf(log.RequestSys, "%s request type: %s", r.Name, item.Method)
	}

	resp, err := r.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %w: %v", r.Name, common.ErrNetwork, err)
	}
	defer resp.Body.Close()

	contents, err := io.ReadAll(resp.Body)
	r.markRequest(time.Now())
	if err != nil {
		return nil, fmt.Errorf("%s %w: reading response body: %v", r.Name, common.ErrNetwork, err)
	}

	if verbose {
		log.Debugf(log.RequestSys, "%s HTTP status: %s, Code: %v", r.Name, resp.Status, resp.StatusCode)
		log.Debugf(log.RequestSys, "%s raw response: %s", r.Name, string(contents))
	}

	if !json.Valid(contents) {
		return nil, fmt.Errorf("%s %w: HTTP status code %d, response is not JSON: %q",
			r.Name, common.ErrInvalidData, resp.StatusCode, truncate(contents, 256))
	}
	return &Response{StatusCode: resp.StatusCode, Body: contents}, nil
}

// markRequest keeps the last request time non-decreasing
func (r *Requester) markRequest(t time.Time) {
	if t.After(r.lastRequest) {
		r.lastRequest = t
	}
}

// validateRequest validates the requester item fields
func (i *Item) validateRequest(ctx context.Context, r *Requester) (*http.Request, error) {
	if i == nil {
		return nil, errRequestItemNil
	}
	if i.Path == "" {
		return nil, errInvalidPath
	}

	req, err := http.NewRequestWithContext(ctx, i.Method, i.Path, i.Body)
	if err != nil {
		return nil, err
	}
	for k, v := range i.Headers {
		req.Header.Add(k, v)
	}
	if r.UserAgent != "" && req.Header.Get(userAgent) == "" {
		req.Header.Add(userAgent, r.UserAgent)
	}
	return req, nil
}

func truncate(b []byte, n int) string {
	if len(b) > n {
		return string(b[:n]) + "..."
	}
	return string(b)
}
