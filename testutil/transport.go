package testutil

import (
	"context"
	"net/http"
	"sync"

	"github.com/hupe1980/notesync/transport"
)

// Call is a request seen by Transport.
type Call struct {
	Method      string
	URL         string
	Body        []byte
	ContentType string
}

// Transport is an in-memory transport.Transport with scriptable failures
// and gates that hold requests until released.
//
// GET returns the current document. A successful PUT replaces it.
type Transport struct {
	mu          sync.Mutex
	doc         []byte
	calls       []Call
	getErr      error
	getStatus   int
	putErr      error
	putStatus   int
	inFlight    int
	maxInFlight int
	getGate     chan struct{}
	putGate     chan struct{}
}

// NewTransport creates a transport serving doc.
func NewTransport(doc string) *Transport {
	return &Transport{doc: []byte(doc)}
}

const gateCapacity = 1 << 16

// GateGets makes GET requests block until ReleaseGets.
func (t *Transport) GateGets() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.getGate = make(chan struct{}, gateCapacity)
}

// ReleaseGets lets n gated GET requests proceed.
func (t *Transport) ReleaseGets(n int) {
	t.release(t.gateOf(http.MethodGet), n)
}

// GatePuts makes PUT requests block until ReleasePuts.
func (t *Transport) GatePuts() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.putGate = make(chan struct{}, gateCapacity)
}

// ReleasePuts lets n gated PUT requests proceed.
func (t *Transport) ReleasePuts(n int) {
	t.release(t.gateOf(http.MethodPut), n)
}

func (t *Transport) release(gate chan struct{}, n int) {
	if gate == nil {
		return
	}
	for range n {
		gate <- struct{}{}
	}
}

func (t *Transport) gateOf(method string) chan struct{} {
	t.mu.Lock()
	defer t.mu.Unlock()
	if method == http.MethodGet {
		return t.getGate
	}
	return t.putGate
}

// FailGets makes GET requests fail with err.
func (t *Transport) FailGets(err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.getErr = err
}

// SetGetStatus makes GET requests answer with the given status code.
func (t *Transport) SetGetStatus(code int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.getStatus = code
}

// FailPuts makes PUT requests fail with err. Pass nil to recover.
func (t *Transport) FailPuts(err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.putErr = err
}

// SetPutStatus makes PUT requests answer with the given status code.
// Zero restores the default 204.
func (t *Transport) SetPutStatus(code int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.putStatus = code
}

// Do implements transport.Transport.
func (t *Transport) Do(ctx context.Context, req *transport.Request) (*transport.Response, error) {
	if req.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	t.mu.Lock()
	t.calls = append(t.calls, Call{
		Method:      req.Method,
		URL:         req.URL,
		Body:        append([]byte(nil), req.Body...),
		ContentType: req.ContentType,
	})
	t.inFlight++
	t.maxInFlight = max(t.maxInFlight, t.inFlight)
	gate := t.getGate
	if req.Method == http.MethodPut {
		gate = t.putGate
	}
	t.mu.Unlock()

	defer func() {
		t.mu.Lock()
		t.inFlight--
		t.mu.Unlock()
	}()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, transport.Classify(ctx.Err())
		}
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	switch req.Method {
	case http.MethodGet:
		if t.getErr != nil {
			return nil, t.getErr
		}
		if t.getStatus != 0 && t.getStatus != http.StatusOK {
			return &transport.Response{StatusCode: t.getStatus}, &transport.ErrHTTPStatus{StatusCode: t.getStatus}
		}
		return &transport.Response{StatusCode: http.StatusOK, Body: append([]byte(nil), t.doc...)}, nil
	case http.MethodPut:
		if t.putErr != nil {
			return nil, t.putErr
		}
		if t.putStatus != 0 && (t.putStatus < 200 || t.putStatus > 299) {
			return &transport.Response{StatusCode: t.putStatus}, &transport.ErrHTTPStatus{StatusCode: t.putStatus}
		}
		t.doc = append([]byte(nil), req.Body...)
		return &transport.Response{StatusCode: http.StatusNoContent}, nil
	default:
		return &transport.Response{StatusCode: http.StatusMethodNotAllowed}, &transport.ErrHTTPStatus{StatusCode: http.StatusMethodNotAllowed}
	}
}

// Calls returns every request seen so far.
func (t *Transport) Calls() []Call {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Call(nil), t.calls...)
}

// Puts returns the bodies of every PUT seen so far, including gated ones.
func (t *Transport) Puts() [][]byte {
	t.mu.Lock()
	defer t.mu.Unlock()
	var out [][]byte
	for _, c := range t.calls {
		if c.Method == http.MethodPut {
			out = append(out, c.Body)
		}
	}
	return out
}

// PutCount returns the number of PUT requests seen so far.
func (t *Transport) PutCount() int {
	return len(t.Puts())
}

// LastPut returns the body of the most recent PUT.
func (t *Transport) LastPut() ([]byte, bool) {
	puts := t.Puts()
	if len(puts) == 0 {
		return nil, false
	}
	return puts[len(puts)-1], true
}

// MaxInFlight returns the highest number of concurrent requests observed.
func (t *Transport) MaxInFlight() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.maxInFlight
}

// InFlight returns the number of requests currently in progress.
func (t *Transport) InFlight() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.inFlight
}

// Document returns the current document.
func (t *Transport) Document() []byte {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]byte(nil), t.doc...)
}
