package codec

import "fmt"

// ErrParse indicates the document is not syntactically valid.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrParse struct {
	Message string
	cause   error
}

func (e *ErrParse) Error() string {
	return fmt.Sprintf("parse failure: %s", e.Message)
}

func (e *ErrParse) Unwrap() error { return e.cause }

// ErrValidation indicates a well-formed document containing a record of the
// wrong shape.
type ErrValidation struct {
	// Index is the position of the offending record in the document.
	Index int
	// Record is the decoded record as found on the wire.
	Record any
	// Reason names the violated constraint.
	Reason string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation failure: record %d: %s", e.Index, e.Reason)
}
