package transport

import (
	"context"
	"net/http"
	"time"
)

// ContentTypeJSON is the media type of the note document.
const ContentTypeJSON = "application/json"

// Request describes a single round trip.
type Request struct {
	Method      string
	URL         string
	Body        []byte
	ContentType string
	// Timeout bounds the round trip. Zero means no timeout beyond ctx.
	Timeout time.Duration
}

// Response is the outcome of a round trip that reached the remote side.
// Non-2xx responses are returned as *ErrHTTPStatus errors alongside the response.
type Response struct {
	StatusCode int
	Body       []byte
}

// OK reports whether the status code is in the 2xx range.
func (r *Response) OK() bool {
	return r.StatusCode >= http.StatusOK && r.StatusCode < http.StatusMultipleChoices
}

// Transport performs requests.
//
// Implementations must return an error matching one of ErrNetwork, ErrTimeout,
// ErrAborted or *ErrHTTPStatus for every failure.
type Transport interface {
	Do(ctx context.Context, req *Request) (*Response, error)
}

// Func adapts an ordinary function to the Transport interface.
type Func func(ctx context.Context, req *Request) (*Response, error)

// Do calls f(ctx, req).
func (f Func) Do(ctx context.Context, req *Request) (*Response, error) {
	return f(ctx, req)
}

// withTimeout derives the request context.
func withTimeout(ctx context.Context, req *Request) (context.Context, context.CancelFunc) {
	if req.Timeout > 0 {
		return context.WithTimeout(ctx, req.Timeout)
	}
	return context.WithCancel(ctx)
}
