package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/time/rate"
)

// HTTPOption configures an HTTP transport.
type HTTPOption func(*HTTP)

// WithHTTPClient sets the client used for requests.
func WithHTTPClient(c *http.Client) HTTPOption {
	return func(t *HTTP) {
		t.client = c
	}
}

// WithHeader adds a header sent with every request.
func WithHeader(key, value string) HTTPOption {
	return func(t *HTTP) {
		t.header.Add(key, value)
	}
}

// WithRateLimit limits requests to r per second with the given burst.
func WithRateLimit(r float64, burst int) HTTPOption {
	return func(t *HTTP) {
		t.limiter = rate.NewLimiter(rate.Limit(r), burst)
	}
}

// HTTP is a Transport backed by a net/http client.
type HTTP struct {
	client  *http.Client
	header  http.Header
	limiter *rate.Limiter
}

// NewHTTP creates an HTTP transport.
func NewHTTP(opts ...HTTPOption) *HTTP {
	t := &HTTP{
		client: http.DefaultClient,
		header: make(http.Header),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Do issues the request.
func (t *HTTP) Do(ctx context.Context, req *Request) (*Response, error) {
	ctx, cancel := withTimeout(ctx, req)
	defer cancel()

	if t.limiter != nil {
		if err := t.limiter.Wait(ctx); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, Classify(ctxErr)
			}
			// The limiter refuses waits that would outlive the deadline.
			return nil, fmt.Errorf("%w: %w", ErrTimeout, err)
		}
	}

	var body io.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNetwork, err)
	}
	for k, vs := range t.header {
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}
	if req.ContentType != "" {
		httpReq.Header.Set("Content-Type", req.ContentType)
	}

	httpResp, err := t.client.Do(httpReq)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, Classify(ctxErr)
		}
		return nil, Classify(err)
	}
	defer httpResp.Body.Close()

	data, err := io.ReadAll(httpResp.Body)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, Classify(ctxErr)
		}
		return nil, Classify(err)
	}

	resp := &Response{StatusCode: httpResp.StatusCode, Body: data}
	if !resp.OK() {
		return resp, &ErrHTTPStatus{StatusCode: resp.StatusCode}
	}

	return resp, nil
}
