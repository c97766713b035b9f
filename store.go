package notesync

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hupe1980/notesync/codec"
	"github.com/hupe1980/notesync/collection"
	"github.com/hupe1980/notesync/model"
	"github.com/hupe1980/notesync/notify"
	"github.com/hupe1980/notesync/transport"
)

type opKind int

const (
	opAdd opKind = iota
	opDelete
	opSetText
	opFlush
)

func (k opKind) String() string {
	switch k {
	case opAdd:
		return "add"
	case opDelete:
		return "delete"
	case opSetText:
		return "set_text"
	case opFlush:
		return "flush"
	default:
		return "unknown"
	}
}

// op is a queued mutation.
type op struct {
	kind opKind
	id   model.NoteID
	note model.Note
	text string
	res  *Result
}

// Store is the sync engine. It owns the paged note collection, applies
// mutations in call order and persists the whole document after each change.
//
// All methods are safe for concurrent use.
type Store struct {
	transport transport.Transport
	url       string
	opts      options
	logger    *Logger

	ctx    context.Context
	cancel context.CancelFunc

	// mu guards notes. Only the engine goroutine writes.
	mu    sync.RWMutex
	notes *collection.Paged

	loaded  chan struct{}
	loadErr error

	qmu     sync.Mutex
	pending []op
	closing bool
	wake    chan struct{}

	saveDone chan saveOutcome
	state    atomic.Int32

	// Owned by the engine goroutine.
	dirty       bool
	inflight    *saveJob
	queued      *saveJob
	lastSaveErr error

	closeOnce sync.Once
	stopped   chan struct{}
}

// New creates a store for the document at url and starts loading it.
//
// New never blocks; use WaitLoaded or Loaded to observe the load outcome.
func New(t transport.Transport, url string, optFns ...Option) *Store {
	o := applyOptions(optFns)

	ctx, cancel := context.WithCancel(context.Background())

	s := &Store{
		transport: t,
		url:       url,
		opts:      o,
		logger:    o.logger.WithURL(url),
		ctx:       ctx,
		cancel:    cancel,
		notes:     collection.New(),
		loaded:    make(chan struct{}),
		wake:      make(chan struct{}, 1),
		saveDone:  make(chan saveOutcome, 1),
		stopped:   make(chan struct{}),
	}

	go s.run()

	return s
}

// Events returns the hub the store publishes on.
func (s *Store) Events() *notify.Hub {
	return s.opts.hub
}

// Loaded is closed once the initial load has finished, successfully or not.
func (s *Store) Loaded() <-chan struct{} {
	return s.loaded
}

// LoadErr returns the *LoadError of a failed load. It returns nil while the
// load is pending or after it succeeded.
func (s *Store) LoadErr() error {
	select {
	case <-s.loaded:
		return s.loadErr
	default:
		return nil
	}
}

// WaitLoaded blocks until the initial load has finished and returns its error.
func (s *Store) WaitLoaded(ctx context.Context) error {
	select {
	case <-s.loaded:
		return s.loadErr
	case <-ctx.Done():
		return ctx.Err()
	}
}

// State returns the current save state.
func (s *Store) State() SaveState {
	return SaveState(s.state.Load())
}

func (s *Store) setState(st SaveState) {
	s.state.Store(int32(st))
}

// Add stores a copy of n under a fresh ID and returns that ID.
//
// Pages up to n.PageIndex are created as needed. A negative page index
// settles the result with collection.ErrInvalidPageIndex.
func (s *Store) Add(n model.Note) (model.NoteID, *Result) {
	n.ID = model.NewID()
	return n.ID, s.enqueue(op{kind: opAdd, id: n.ID, note: n})
}

// DeleteNote removes the note with the given ID.
//
// Deleting an unknown or already removed note is a no-op that starts no new
// save; its result settles with the in-flight save, or with the last
// completed one when idle.
func (s *Store) DeleteNote(id model.NoteID) *Result {
	return s.enqueue(op{kind: opDelete, id: id})
}

// SetNoteText replaces the text of a note and re-sorts its page.
// Unknown IDs behave as in DeleteNote.
func (s *Store) SetNoteText(id model.NoteID, text string) *Result {
	return s.enqueue(op{kind: opSetText, id: id, text: text})
}

// Flush saves the current document even if nothing changed. Use it to
// retry after a failed save.
func (s *Store) Flush() *Result {
	return s.enqueue(op{kind: opFlush})
}

func (s *Store) enqueue(o op) *Result {
	o.res = newResult()

	s.qmu.Lock()
	if s.closing {
		s.qmu.Unlock()
		o.res.settle(ErrClosed)
		return o.res
	}
	s.pending = append(s.pending, o)
	s.qmu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}

	return o.res
}

func (s *Store) takePending() []op {
	s.qmu.Lock()
	defer s.qmu.Unlock()
	ops := s.pending
	s.pending = nil
	return ops
}

// Close stops the engine. In-flight requests are cancelled and surface as
// transport.ErrAborted; queued mutations settle with ErrClosed.
func (s *Store) Close() error {
	s.closeOnce.Do(func() {
		s.qmu.Lock()
		s.closing = true
		s.qmu.Unlock()

		s.cancel()
	})
	<-s.stopped
	return nil
}

func (s *Store) run() {
	defer close(s.stopped)

	s.load()

	for {
		select {
		case <-s.ctx.Done():
			s.shutdown()
			return
		case <-s.wake:
			for _, o := range s.takePending() {
				s.apply(o)
			}
		case out := <-s.saveDone:
			s.finishSave(out)
		}
	}
}

func (s *Store) load() {
	start := time.Now()

	resp, err := s.transport.Do(s.ctx, &transport.Request{
		Method:  http.MethodGet,
		URL:     s.url,
		Timeout: s.opts.loadTimeout,
	})
	err = s.responseError(resp, err)

	var pages [][]model.Note
	if err == nil {
		pages, err = codec.Decode(s.opts.codec, resp.Body)
	} else if code, ok := transport.StatusCode(err); ok && code == http.StatusNotFound && s.opts.createIfMissing {
		err = nil
	}

	notes := collection.New()
	if err == nil {
		notes, err = collection.FromPages(pages)
	}
	if err != nil {
		s.loadErr = &LoadError{Err: err}
		notes = collection.New()
	}

	s.mu.Lock()
	s.notes = notes
	s.mu.Unlock()

	close(s.loaded)

	elapsed := time.Since(start)
	s.logger.LogLoad(s.ctx, notes.Count(), elapsed, s.loadErr)
	s.opts.metricsCollector.RecordLoad(elapsed, notes.Count(), s.loadErr)

	if s.loadErr == nil {
		s.emit(notify.EventNotesChanged, map[string]any{"op": "load"})
	}
}

// responseError folds non-2xx responses into *transport.ErrHTTPStatus and
// classifies transport failures.
func (s *Store) responseError(resp *transport.Response, err error) error {
	if err != nil {
		if ctxErr := s.ctx.Err(); ctxErr != nil {
			return transport.Classify(ctxErr)
		}
		return transport.Classify(err)
	}
	if resp == nil {
		return &transport.ErrHTTPStatus{}
	}
	if !resp.OK() {
		return &transport.ErrHTTPStatus{StatusCode: resp.StatusCode}
	}
	return nil
}

func (s *Store) apply(o op) {
	if s.ctx.Err() != nil {
		o.res.settle(ErrClosed)
		return
	}
	if s.loadErr != nil {
		s.opts.metricsCollector.RecordMutation(o.kind.String(), false, s.loadErr)
		o.res.settle(s.loadErr)
		return
	}

	var (
		changed bool
		err     error
	)

	s.mu.Lock()
	switch o.kind {
	case opAdd:
		err = s.notes.Insert(o.note)
		changed = err == nil
	case opDelete:
		changed = s.notes.Remove(o.id)
	case opSetText:
		changed = s.notes.SetText(o.id, o.text)
	case opFlush:
		s.dirty = true
	}
	s.mu.Unlock()

	s.logger.LogMutation(s.ctx, o.kind.String(), o.id, changed, err)
	s.opts.metricsCollector.RecordMutation(o.kind.String(), changed, err)

	if err != nil {
		o.res.settle(err)
		return
	}

	if changed {
		s.dirty = true
		s.emit(notify.EventNotesChanged, map[string]any{"op": o.kind.String(), "id": o.id.String()})
	}

	s.trigger(o.res)
}

// emit publishes an event on the engine goroutine. Hook failures are logged.
func (s *Store) emit(name string, metadata map[string]any) {
	err := s.opts.hub.Notify(s.ctx, notify.Event{Name: name, Metadata: metadata})
	if err != nil {
		s.logger.WarnContext(s.ctx, "event hook failed", "event", name, "error", err)
	}
}

func (s *Store) shutdown() {
	for _, o := range s.takePending() {
		o.res.settle(ErrClosed)
	}

	if s.inflight != nil {
		out := <-s.saveDone
		s.record(out)
		s.inflight.settle(out.err)
		s.inflight = nil
	}
	if s.queued != nil {
		s.queued.settle(ErrClosed)
		s.queued = nil
	}

	s.setState(Idle)
}
