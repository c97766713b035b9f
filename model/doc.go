// Package model defines core types used throughout notesync.
//
// # Identity Types
//
//   - NoteID: Opaque, store-assigned identifier for a note (UUID v4)
//   - NilID: The absent handle, used to start navigation at either end
//
// # Data Types
//
//   - Note: A positioned rectangle with text, attached to one page
//
// # Ordering
//
// Notes within a page are kept sorted by Compare: ascending Y, then X,
// then Height, then Width, then Text.
//
//	sort.SliceStable(notes, func(i, j int) bool {
//	    return model.Compare(notes[i], notes[j]) < 0
//	})
package model
