package notesync

import (
	"context"
	"sync"

	"github.com/hupe1980/notesync/model"
	"github.com/hupe1980/notesync/notify"
)

// Cursor tracks the note currently open for editing and moves it through
// the document in response to navigation events.
type Cursor struct {
	store *Store

	mu      sync.Mutex
	current model.NoteID
	unsubs  []func()
}

// NewCursor creates a cursor over store with no note selected.
func NewCursor(store *Store) *Cursor {
	return &Cursor{store: store}
}

// Current returns the selected note.
func (c *Cursor) Current() (model.Note, bool) {
	c.mu.Lock()
	id := c.current
	c.mu.Unlock()

	if id.IsNil() {
		return model.Note{}, false
	}
	return c.store.Get(id)
}

// Set selects the note with the given ID. model.NilID clears the selection.
// It reports false, leaving the selection unchanged, when id is unknown.
func (c *Cursor) Set(id model.NoteID) bool {
	if !id.IsNil() {
		if _, ok := c.store.Get(id); !ok {
			return false
		}
	}

	c.mu.Lock()
	c.current = id
	c.mu.Unlock()
	return true
}

// MoveNext selects the note after the current one, or the first note when
// nothing is selected.
func (c *Cursor) MoveNext() (model.Note, bool) {
	return c.move(c.store.NextNote)
}

// MovePrevious selects the note before the current one, or the last note
// when nothing is selected.
func (c *Cursor) MovePrevious() (model.Note, bool) {
	return c.move(c.store.PreviousNote)
}

func (c *Cursor) move(step func(model.NoteID) (model.Note, bool)) (model.Note, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	n, ok := step(c.current)
	if ok {
		c.current = n.ID
	}
	return n, ok
}

// OpenFirst waits for the store to load and selects the first note.
func (c *Cursor) OpenFirst(ctx context.Context) (model.Note, bool, error) {
	if err := c.store.WaitLoaded(ctx); err != nil {
		return model.Note{}, false, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	n, ok := c.store.NextNote(model.NilID)
	if ok {
		c.current = n.ID
	}
	return n, ok, nil
}

// Bind subscribes the cursor to navigation events on hub. When the
// selected note disappears after a change, the selection is cleared.
func (c *Cursor) Bind(hub *notify.Hub) {
	unsubs := []func(){
		hub.Subscribe(notify.EventMoveToNextNote, notify.HookFunc(func(context.Context, notify.Event) error {
			c.MoveNext()
			return nil
		})),
		hub.Subscribe(notify.EventMoveToPreviousNote, notify.HookFunc(func(context.Context, notify.Event) error {
			c.MovePrevious()
			return nil
		})),
		hub.Subscribe(notify.EventNotesChanged, notify.HookFunc(func(context.Context, notify.Event) error {
			c.mu.Lock()
			defer c.mu.Unlock()
			if _, ok := c.store.Get(c.current); !ok {
				c.current = model.NilID
			}
			return nil
		})),
	}

	c.mu.Lock()
	c.unsubs = append(c.unsubs, unsubs...)
	c.mu.Unlock()
}

// Close removes every subscription made by Bind.
func (c *Cursor) Close() {
	c.mu.Lock()
	unsubs := c.unsubs
	c.unsubs = nil
	c.mu.Unlock()

	for _, unsub := range unsubs {
		unsub()
	}
}
