package notify

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"
)

// Event names.
const (
	// EventNotesChanged fires after every successful load and every applied mutation.
	EventNotesChanged = "noteschanged"
	// EventMoveToNextNote asks a cursor to advance to the next note.
	EventMoveToNextNote = "movetonextnote"
	// EventMoveToPreviousNote asks a cursor to step back to the previous note.
	EventMoveToPreviousNote = "movetopreviousnote"
)

// Event is a single notification. Consumers should re-query the store
// rather than rely on Metadata contents.
type Event struct {
	Name       string
	Metadata   map[string]any
	OccurredAt time.Time
}

// Hook receives events.
type Hook interface {
	Notify(ctx context.Context, event Event) error
}

// HookFunc allows plain functions to satisfy Hook.
type HookFunc func(ctx context.Context, event Event) error

// Notify dispatches to the underlying function.
func (fn HookFunc) Notify(ctx context.Context, event Event) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, event)
}

type subscription struct {
	id   uint64
	name string
	hook Hook
}

// Hub fans out events to subscribed hooks. It is safe for concurrent use.
type Hub struct {
	mu     sync.RWMutex
	nextID uint64
	subs   []subscription
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{}
}

// Subscribe registers hook for events named name, or for all events when
// name is empty. The returned function removes the subscription and may be
// called more than once.
func (h *Hub) Subscribe(name string, hook Hook) func() {
	if hook == nil {
		return func() {}
	}

	h.mu.Lock()
	h.nextID++
	id := h.nextID
	h.subs = append(h.subs, subscription{id: id, name: strings.TrimSpace(name), hook: hook})
	h.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			for i, s := range h.subs {
				if s.id == id {
					h.subs = append(h.subs[:i:i], h.subs[i+1:]...)
					return
				}
			}
		})
	}
}

// Len returns the number of subscriptions.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Notify forwards the event to every matching hook, returning a joined error
// if any fail. Hooks run without the hub lock held, so they may subscribe,
// unsubscribe or notify.
func (h *Hub) Notify(ctx context.Context, event Event) error {
	if ctx == nil {
		ctx = context.Background()
	}
	event.Name = strings.TrimSpace(event.Name)
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}

	h.mu.RLock()
	hooks := make([]Hook, 0, len(h.subs))
	for _, s := range h.subs {
		if s.name == "" || s.name == event.Name {
			hooks = append(hooks, s.hook)
		}
	}
	h.mu.RUnlock()

	var errs []error
	for _, hook := range hooks {
		if err := hook.Notify(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errors.Join(errs...)
}
