package collection

import (
	"slices"

	"github.com/hupe1980/notesync/model"
)

// Next returns the note following id in document order: ascending pages and,
// within a page, sort order. The last note wraps around to the first. A nil
// or unknown id yields the first note. An empty collection yields false.
func (p *Paged) Next(id model.NoteID) (model.Note, bool) {
	if p.occupied.IsEmpty() {
		return model.Note{}, false
	}

	pageIndex, pos, ok := p.locate(id)
	if !ok {
		return p.first()
	}

	if page := p.pages[pageIndex]; pos+1 < len(page) {
		return *p.notes[page[pos+1]], true
	}

	rank := p.occupied.Rank(uint32(pageIndex))
	if rank < p.occupied.GetCardinality() {
		next, err := p.occupied.Select(uint32(rank))
		if err == nil {
			return p.firstOn(int(next))
		}
	}
	return p.first()
}

// Previous returns the note preceding id in document order. The first note
// wraps around to the last. A nil or unknown id yields the last note. An
// empty collection yields false.
func (p *Paged) Previous(id model.NoteID) (model.Note, bool) {
	if p.occupied.IsEmpty() {
		return model.Note{}, false
	}

	pageIndex, pos, ok := p.locate(id)
	if !ok {
		return p.last()
	}

	if pos > 0 {
		return *p.notes[p.pages[pageIndex][pos-1]], true
	}

	if pageIndex > 0 {
		rank := p.occupied.Rank(uint32(pageIndex - 1))
		if rank > 0 {
			prev, err := p.occupied.Select(uint32(rank - 1))
			if err == nil {
				return p.lastOn(int(prev))
			}
		}
	}
	return p.last()
}

func (p *Paged) locate(id model.NoteID) (pageIndex, pos int, ok bool) {
	if id.IsNil() {
		return 0, 0, false
	}
	n, found := p.notes[id]
	if !found {
		return 0, 0, false
	}
	pos = slices.Index(p.pages[n.PageIndex], id)
	return n.PageIndex, pos, pos >= 0
}

func (p *Paged) first() (model.Note, bool) {
	return p.firstOn(int(p.occupied.Minimum()))
}

func (p *Paged) last() (model.Note, bool) {
	return p.lastOn(int(p.occupied.Maximum()))
}

func (p *Paged) firstOn(pageIndex int) (model.Note, bool) {
	return p.At(pageIndex, 0)
}

func (p *Paged) lastOn(pageIndex int) (model.Note, bool) {
	if pageIndex < 0 || pageIndex >= len(p.pages) {
		return model.Note{}, false
	}
	return p.At(pageIndex, len(p.pages[pageIndex])-1)
}
