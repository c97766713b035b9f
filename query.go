package notesync

import "github.com/hupe1980/notesync/model"

// NotesForPage returns a copy of the notes on page i in sort order.
// Out-of-range pages yield an empty slice.
func (s *Store) NotesForPage(i int) []model.Note {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.notes.Page(i)
}

// Note returns the note at position idx on page i.
func (s *Store) Note(i, idx int) (model.Note, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.notes.At(i, idx)
}

// Get returns the note with the given ID.
func (s *Store) Get(id model.NoteID) (model.Note, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.notes.Get(id)
}

// Pages returns a copy of every page, including empty ones.
func (s *Store) Pages() [][]model.Note {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.notes.Pages()
}

// PageCount returns the number of pages: the highest page index seen plus one.
func (s *Store) PageCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.notes.Len()
}

// NoteCount returns the number of notes.
func (s *Store) NoteCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.notes.Count()
}

// NextNote returns the note after id in document order, wrapping around.
// model.NilID or an unknown id yields the first note; an empty document
// yields false.
func (s *Store) NextNote(id model.NoteID) (model.Note, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.notes.Next(id)
}

// PreviousNote returns the note before id in document order, wrapping around.
// model.NilID or an unknown id yields the last note; an empty document
// yields false.
func (s *Store) PreviousNote(id model.NoteID) (model.Note, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.notes.Previous(id)
}
