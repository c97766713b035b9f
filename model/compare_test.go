package model

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompare(t *testing.T) {
	base := Note{X: 10, Y: 10, Width: 5, Height: 5, Text: "b"}

	tests := []struct {
		name  string
		other Note
		want  int
	}{
		{"equal", base, 0},
		{"lower y first", Note{X: 99, Y: 5, Width: 5, Height: 5, Text: "z"}, 1},
		{"higher y last", Note{X: 0, Y: 20, Width: 5, Height: 5, Text: "a"}, -1},
		{"x breaks y tie", Note{X: 5, Y: 10, Width: 5, Height: 5, Text: "b"}, 1},
		{"height breaks x tie", Note{X: 10, Y: 10, Width: 5, Height: 9, Text: "b"}, -1},
		{"width breaks height tie", Note{X: 10, Y: 10, Width: 1, Height: 5, Text: "b"}, 1},
		{"text breaks width tie", Note{X: 10, Y: 10, Width: 5, Height: 5, Text: "a"}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Compare(base, tt.other))
			assert.Equal(t, -tt.want, Compare(tt.other, base))
		})
	}
}

func TestCompareSortsAscending(t *testing.T) {
	notes := []Note{
		{Y: 30, Text: "c"},
		{Y: 10, Text: "a"},
		{Y: 20, Text: "b"},
	}
	slices.SortStableFunc(notes, Compare)

	got := make([]string, 0, len(notes))
	for _, n := range notes {
		got = append(got, n.Text)
	}
	assert.Equal(t, []string{"a", "b", "c"}, got)
}

func TestNoteIDRoundTrip(t *testing.T) {
	id := NewID()
	require.False(t, id.IsNil())
	assert.True(t, NilID.IsNil())

	parsed, err := ParseID(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, parsed)

	_, err = ParseID("not-a-uuid")
	assert.Error(t, err)
}
