package collection

import (
	"errors"
	"fmt"
	"slices"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/notesync/model"
)

var (
	// ErrInvalidPageIndex is returned when inserting a note on a negative page
	// or beyond model.MaxPageIndex.
	ErrInvalidPageIndex = errors.New("page index out of range")

	// ErrInvalidGeometry is returned when inserting a note with a NaN or
	// infinite coordinate or size.
	ErrInvalidGeometry = errors.New("note geometry must be finite")

	// ErrMissingID is returned when inserting a note without an ID.
	ErrMissingID = errors.New("note id is required")

	// ErrDuplicateID is returned when inserting a note whose ID is already stored.
	ErrDuplicateID = errors.New("duplicate note id")
)

// Paged is an ordered-by-page container of notes.
type Paged struct {
	notes    map[model.NoteID]*model.Note
	pages    [][]model.NoteID
	occupied *roaring.Bitmap
}

// New returns an empty collection.
func New() *Paged {
	return &Paged{
		notes:    make(map[model.NoteID]*model.Note),
		occupied: roaring.New(),
	}
}

// FromPages builds a collection from decoded pages. Each note is filed under
// its slot in pages; its PageIndex field is overwritten to match. Notes
// without an ID get a fresh one.
func FromPages(pages [][]model.Note) (*Paged, error) {
	if len(pages) > model.MaxPageIndex+1 {
		return nil, fmt.Errorf("%w: %d pages", ErrInvalidPageIndex, len(pages))
	}

	p := New()
	p.grow(len(pages) - 1)
	for pageIndex, page := range pages {
		for _, n := range page {
			n.PageIndex = pageIndex
			if n.ID.IsNil() {
				n.ID = model.NewID()
			}
			if err := p.Insert(n); err != nil {
				return nil, err
			}
		}
	}
	return p, nil
}

// Len returns the number of pages, i.e. the highest page index seen plus one.
func (p *Paged) Len() int {
	return len(p.pages)
}

// Count returns the number of notes across all pages.
func (p *Paged) Count() int {
	return len(p.notes)
}

// Insert stores n at the end of its page and re-sorts the page.
func (p *Paged) Insert(n model.Note) error {
	if n.PageIndex < 0 || n.PageIndex > model.MaxPageIndex {
		return fmt.Errorf("%w: %d", ErrInvalidPageIndex, n.PageIndex)
	}
	if !n.FiniteGeometry() {
		return fmt.Errorf("%w: %s", ErrInvalidGeometry, n)
	}
	if n.ID.IsNil() {
		return ErrMissingID
	}
	if _, ok := p.notes[n.ID]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateID, n.ID)
	}

	p.grow(n.PageIndex)

	stored := n
	p.notes[n.ID] = &stored
	p.pages[n.PageIndex] = append(p.pages[n.PageIndex], n.ID)
	p.occupied.Add(uint32(n.PageIndex))
	p.sortPage(n.PageIndex)
	return nil
}

// Remove deletes the note with the given ID. It reports false when no such
// note is stored.
func (p *Paged) Remove(id model.NoteID) bool {
	n, ok := p.notes[id]
	if !ok {
		return false
	}

	page := p.pages[n.PageIndex]
	if i := slices.Index(page, id); i >= 0 {
		p.pages[n.PageIndex] = slices.Delete(page, i, i+1)
	}
	if len(p.pages[n.PageIndex]) == 0 {
		p.occupied.Remove(uint32(n.PageIndex))
	}
	delete(p.notes, id)
	return true
}

// SetText replaces the text of the note with the given ID and re-sorts its
// page. It reports false when no such note is stored.
func (p *Paged) SetText(id model.NoteID, text string) bool {
	n, ok := p.notes[id]
	if !ok {
		return false
	}
	n.Text = text
	p.sortPage(n.PageIndex)
	return true
}

// Get returns a copy of the note with the given ID.
func (p *Paged) Get(id model.NoteID) (model.Note, bool) {
	n, ok := p.notes[id]
	if !ok {
		return model.Note{}, false
	}
	return *n, true
}

// Page returns a copy of the notes on page i in sort order. Out-of-range
// pages yield an empty, non-nil slice.
func (p *Paged) Page(i int) []model.Note {
	if i < 0 || i >= len(p.pages) {
		return []model.Note{}
	}
	ids := p.pages[i]
	out := make([]model.Note, len(ids))
	for j, id := range ids {
		out[j] = *p.notes[id]
	}
	return out
}

// At returns the note at position idx on page i.
func (p *Paged) At(i, idx int) (model.Note, bool) {
	if i < 0 || i >= len(p.pages) {
		return model.Note{}, false
	}
	ids := p.pages[i]
	if idx < 0 || idx >= len(ids) {
		return model.Note{}, false
	}
	return *p.notes[ids[idx]], true
}

// Pages returns a copy of every page in order, including empty ones.
func (p *Paged) Pages() [][]model.Note {
	out := make([][]model.Note, len(p.pages))
	for i := range p.pages {
		out[i] = p.Page(i)
	}
	return out
}

func (p *Paged) grow(pageIndex int) {
	for len(p.pages) <= pageIndex {
		p.pages = append(p.pages, []model.NoteID{})
	}
}

func (p *Paged) sortPage(i int) {
	slices.SortStableFunc(p.pages[i], func(a, b model.NoteID) int {
		return model.Compare(*p.notes[a], *p.notes[b])
	})
}
