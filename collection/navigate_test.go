package collection

import (
	"testing"

	"github.com/hupe1980/notesync/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNavigateEmpty(t *testing.T) {
	p := New()
	_, ok := p.Next(model.NilID)
	assert.False(t, ok)
	_, ok = p.Previous(model.NilID)
	assert.False(t, ok)

	// Pages exist but hold nothing.
	n := note(2, 0, "a")
	require.NoError(t, p.Insert(n))
	require.True(t, p.Remove(n.ID))
	_, ok = p.Next(model.NilID)
	assert.False(t, ok)
}

func TestNavigateWraparound(t *testing.T) {
	p := New()
	r1, r2 := note(0, 0, "r1"), note(2, 0, "r2")
	require.NoError(t, p.Insert(r1))
	require.NoError(t, p.Insert(r2))

	got, ok := p.Next(r2.ID)
	require.True(t, ok)
	assert.Equal(t, r1.ID, got.ID)

	got, ok = p.Previous(r1.ID)
	require.True(t, ok)
	assert.Equal(t, r2.ID, got.ID)

	got, ok = p.Next(model.NilID)
	require.True(t, ok)
	assert.Equal(t, r1.ID, got.ID)

	got, ok = p.Previous(model.NilID)
	require.True(t, ok)
	assert.Equal(t, r2.ID, got.ID)

	got, ok = p.Next(r1.ID)
	require.True(t, ok)
	assert.Equal(t, r2.ID, got.ID)

	got, ok = p.Previous(r2.ID)
	require.True(t, ok)
	assert.Equal(t, r1.ID, got.ID)
}

func TestNavigateFullCycle(t *testing.T) {
	p := New()
	var order []model.NoteID
	for _, n := range []model.Note{
		note(0, 10, "a"), note(0, 20, "b"),
		note(3, 5, "c"),
		note(4, 1, "d"), note(4, 2, "e"),
	} {
		require.NoError(t, p.Insert(n))
		order = append(order, n.ID)
	}

	id := model.NilID
	for i := 0; i < len(order)*2; i++ {
		got, ok := p.Next(id)
		require.True(t, ok)
		assert.Equal(t, order[i%len(order)], got.ID, "step %d", i)
		id = got.ID
	}

	id = model.NilID
	for i := 0; i < len(order)*2; i++ {
		got, ok := p.Previous(id)
		require.True(t, ok)
		want := order[len(order)-1-i%len(order)]
		assert.Equal(t, want, got.ID, "step %d", i)
		id = got.ID
	}
}

func TestNavigateSingleNoteWrapsToItself(t *testing.T) {
	p := New()
	n := note(1, 0, "only")
	require.NoError(t, p.Insert(n))

	got, ok := p.Next(n.ID)
	require.True(t, ok)
	assert.Equal(t, n.ID, got.ID)

	got, ok = p.Previous(n.ID)
	require.True(t, ok)
	assert.Equal(t, n.ID, got.ID)
}

func TestNavigateUnknownIDStartsAtEnds(t *testing.T) {
	p := New()
	a, b := note(0, 0, "a"), note(1, 0, "b")
	require.NoError(t, p.Insert(a))
	require.NoError(t, p.Insert(b))

	got, ok := p.Next(model.NewID())
	require.True(t, ok)
	assert.Equal(t, a.ID, got.ID)

	got, ok = p.Previous(model.NewID())
	require.True(t, ok)
	assert.Equal(t, b.ID, got.ID)
}
