package codec

import (
	"fmt"
	"math"
	"slices"

	"github.com/hupe1980/notesync/model"
)

type wireNote struct {
	PageIndex int     `json:"pageIndex"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	Text      string  `json:"text"`
}

// Encode flattens pages into a document, in page order and, within a page,
// in the given order. Trailing empty pages leave no trace in the output.
func Encode(c Codec, pages [][]model.Note) ([]byte, error) {
	if c == nil {
		c = Default
	}

	n := 0
	for _, page := range pages {
		n += len(page)
	}

	records := make([]wireNote, 0, n)
	for pageIndex, page := range pages {
		for _, note := range page {
			records = append(records, wireNote{
				PageIndex: pageIndex,
				X:         note.X,
				Y:         note.Y,
				Width:     note.Width,
				Height:    note.Height,
				Text:      note.Text,
			})
		}
	}

	data, err := c.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("codec %s: encode: %w", c.Name(), err)
	}
	return data, nil
}

// Decode parses a document into pages.
//
// Records are grouped by page index regardless of their order in the
// document; records of the same page keep their document order. Every
// decoded note gets a fresh ID. Missing intermediate pages are returned as
// empty slices.
func Decode(c Codec, data []byte) ([][]model.Note, error) {
	if c == nil {
		c = Default
	}

	var doc any
	if err := c.Unmarshal(data, &doc); err != nil {
		return nil, &ErrParse{Message: err.Error(), cause: err}
	}

	items, ok := doc.([]any)
	if !ok {
		return nil, &ErrParse{Message: fmt.Sprintf("expected array, got %s", kindOf(doc))}
	}

	notes := make([]model.Note, 0, len(items))
	for i, item := range items {
		note, err := decodeRecord(i, item)
		if err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}

	slices.SortStableFunc(notes, func(a, b model.Note) int {
		return a.PageIndex - b.PageIndex
	})

	var pages [][]model.Note
	for _, note := range notes {
		for len(pages) <= note.PageIndex {
			pages = append(pages, []model.Note{})
		}
		pages[note.PageIndex] = append(pages[note.PageIndex], note)
	}
	return pages, nil
}

func decodeRecord(index int, item any) (model.Note, error) {
	fields, ok := item.(map[string]any)
	if !ok {
		return model.Note{}, &ErrValidation{Index: index, Record: item, Reason: "record is not an object"}
	}

	invalid := func(reason string) error {
		return &ErrValidation{Index: index, Record: item, Reason: reason}
	}

	pageIndex, ok := fields["pageIndex"].(float64)
	if !ok {
		return model.Note{}, invalid("pageIndex must be a number")
	}
	if pageIndex < 0 || pageIndex != math.Trunc(pageIndex) {
		return model.Note{}, invalid("pageIndex must be a non-negative integer")
	}
	if pageIndex > model.MaxPageIndex {
		return model.Note{}, invalid(fmt.Sprintf("pageIndex must not exceed %d", model.MaxPageIndex))
	}

	var rect [4]float64
	for i, key := range [...]string{"x", "y", "width", "height"} {
		v, ok := fields[key].(float64)
		if !ok {
			return model.Note{}, invalid(key + " must be a number")
		}
		rect[i] = v
	}

	text, ok := fields["text"].(string)
	if !ok {
		return model.Note{}, invalid("text must be a string")
	}

	return model.Note{
		ID:        model.NewID(),
		PageIndex: int(pageIndex),
		X:         rect[0],
		Y:         rect[1],
		Width:     rect[2],
		Height:    rect[3],
		Text:      text,
	}, nil
}

func kindOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "object"
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "boolean"
	default:
		return fmt.Sprintf("%T", v)
	}
}
