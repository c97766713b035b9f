package model

import (
	"fmt"
	"math"

	"github.com/google/uuid"
)

// NoteID is the store-assigned identifier of a note.
// It is only stable for the lifetime of the store that issued it; it is not
// part of the wire format.
type NoteID uuid.UUID

// NilID is the absent handle.
var NilID NoteID

// NewID returns a fresh random identifier.
func NewID() NoteID {
	return NoteID(uuid.New())
}

// IsNil reports whether id is the absent handle.
func (id NoteID) IsNil() bool {
	return id == NilID
}

// String returns the canonical UUID form of the identifier.
func (id NoteID) String() string {
	return uuid.UUID(id).String()
}

// ParseID parses the canonical UUID form produced by String.
func ParseID(s string) (NoteID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return NilID, fmt.Errorf("invalid note id %q: %w", s, err)
	}
	return NoteID(u), nil
}

// MaxPageIndex is the highest page index a note may carry. Pages up to the
// highest index are materialized, so the bound caps that allocation.
const MaxPageIndex = 1<<20 - 1

// Note is a rectangular annotation on one page.
type Note struct {
	// ID is assigned by the store. Callers creating a note leave it zero.
	ID NoteID

	PageIndex int
	X         float64
	Y         float64
	Width     float64
	Height    float64
	Text      string
}

// String returns a short human-readable representation of the note.
func (n Note) String() string {
	return fmt.Sprintf("Note(p%d %.1f,%.1f %.1fx%.1f %q)", n.PageIndex, n.X, n.Y, n.Width, n.Height, n.Text)
}

// FiniteGeometry reports whether X, Y, Width and Height are all finite.
// NaN and infinities cannot be represented in the wire format.
func (n Note) FiniteGeometry() bool {
	for _, v := range [...]float64{n.X, n.Y, n.Width, n.Height} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
