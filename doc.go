// Package notesync keeps a page-indexed collection of document notes in
// memory and synchronizes it with a remote endpoint.
//
// # Quick Start
//
//	store := notesync.New(transport.NewHTTP(), "https://example.com/notes/42")
//	defer store.Close()
//
//	if err := store.WaitLoaded(ctx); err != nil {
//	    // The store is usable but empty; every mutation fails with the same error.
//	}
//
//	id, res := store.Add(model.Note{PageIndex: 0, X: 72, Y: 144, Width: 288, Height: 72, Text: "todo"})
//	if err := res.Wait(ctx); err != nil {
//	    // The note is kept in memory; a later mutation or Flush retries the save.
//	}
//
//	store.SetNoteText(id, "done")
//
// # Save Coalescing
//
// Every mutation marks the store dirty and triggers a save of the whole
// document. At most one PUT is in flight. Mutations arriving while a PUT is
// running are coalesced into a single follow-up save that encodes the latest
// state when it starts, so an unbounded burst of edits produces at most two
// requests. Each mutation's Result settles with the outcome of the save that
// persists it.
//
// # Ordering
//
// Mutations are applied strictly in call order by a single engine goroutine.
// Queries may be called from any goroutine and always observe a consistent
// snapshot.
//
// # Events
//
// Store publishes notify.EventNotesChanged after the initial load and after
// every applied mutation. A Cursor bound to the same hub reacts to
// notify.EventMoveToNextNote and notify.EventMoveToPreviousNote.
package notesync
