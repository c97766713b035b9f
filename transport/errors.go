package transport

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNetwork indicates the request could not reach the remote side.
	ErrNetwork = errors.New("transport: network error")
	// ErrTimeout indicates the request exceeded its timeout.
	ErrTimeout = errors.New("transport: timeout")
	// ErrAborted indicates the request was cancelled by its caller.
	ErrAborted = errors.New("transport: aborted")
)

// ErrHTTPStatus reports a response outside the 2xx range.
type ErrHTTPStatus struct {
	StatusCode int
}

func (e *ErrHTTPStatus) Error() string {
	return fmt.Sprintf("transport: http status %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// StatusCode returns the HTTP status carried by err, if any.
func StatusCode(err error) (int, bool) {
	var e *ErrHTTPStatus
	if errors.As(err, &e) {
		return e.StatusCode, true
	}
	return 0, false
}

// Classify maps err onto one of the transport failure kinds.
// Errors that already carry a kind are returned unchanged; other errors
// are wrapped as ErrNetwork.
func Classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrNetwork), errors.Is(err, ErrTimeout), errors.Is(err, ErrAborted):
		return err
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	case errors.Is(err, context.Canceled):
		return fmt.Errorf("%w: %w", ErrAborted, err)
	}

	var status *ErrHTTPStatus
	if errors.As(err, &status) {
		return err
	}

	return fmt.Errorf("%w: %w", ErrNetwork, err)
}
