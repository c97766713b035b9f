package notesync

import (
	"errors"
	"fmt"
)

// ErrClosed is returned for operations issued after Close, and for
// mutations whose save was still pending when the store closed.
var ErrClosed = errors.New("notesync: store closed")

// LoadError reports a failed initial load.
//
// Err is one of transport.ErrNetwork, transport.ErrTimeout,
// transport.ErrAborted, *transport.ErrHTTPStatus, *codec.ErrParse or
// *codec.ErrValidation, and can be matched with errors.Is / errors.As.
type LoadError struct {
	Err error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("notesync: load failed: %v", e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// SaveError reports a failed save.
//
// Err is one of transport.ErrNetwork, transport.ErrTimeout,
// transport.ErrAborted or *transport.ErrHTTPStatus. A failed save leaves the
// in-memory collection untouched.
type SaveError struct {
	Err error
}

func (e *SaveError) Error() string {
	return fmt.Sprintf("notesync: save failed: %v", e.Err)
}

func (e *SaveError) Unwrap() error { return e.Err }
