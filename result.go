package notesync

import (
	"context"
	"sync"
)

// Result is the eventual outcome of a mutation.
//
// It settles once, with nil when the save that persists the mutation
// succeeded, or with a *LoadError, *SaveError, ErrClosed or a validation
// error otherwise.
type Result struct {
	once sync.Once
	done chan struct{}
	err  error
}

func newResult() *Result {
	return &Result{done: make(chan struct{})}
}

func settledResult(err error) *Result {
	r := newResult()
	r.settle(err)
	return r
}

// settle records err and releases waiters. Later calls are ignored.
func (r *Result) settle(err error) {
	r.once.Do(func() {
		r.err = err
		close(r.done)
	})
}

// Done is closed once the result has settled.
func (r *Result) Done() <-chan struct{} {
	return r.done
}

// Err returns the outcome, or nil while the result is still pending.
func (r *Result) Err() error {
	select {
	case <-r.done:
		return r.err
	default:
		return nil
	}
}

// Wait blocks until the result settles or ctx is done.
func (r *Result) Wait(ctx context.Context) error {
	select {
	case <-r.done:
		return r.err
	case <-ctx.Done():
		return ctx.Err()
	}
}
