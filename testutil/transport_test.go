package testutil

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/hupe1980/notesync/transport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransport_GetPut(t *testing.T) {
	ctx := context.Background()
	tr := NewTransport(`[]`)

	resp, err := tr.Do(ctx, &transport.Request{Method: http.MethodGet, URL: "doc"})
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(resp.Body))

	_, err = tr.Do(ctx, &transport.Request{Method: http.MethodPut, URL: "doc", Body: []byte(`[1]`)})
	require.NoError(t, err)

	assert.Equal(t, `[1]`, string(tr.Document()))
	assert.Equal(t, 1, tr.PutCount())
	last, ok := tr.LastPut()
	require.True(t, ok)
	assert.Equal(t, `[1]`, string(last))
	assert.Len(t, tr.Calls(), 2)
}

func TestTransport_GatedPut(t *testing.T) {
	tr := NewTransport(`[]`)
	tr.GatePuts()

	done := make(chan error, 1)
	go func() {
		_, err := tr.Do(context.Background(), &transport.Request{Method: http.MethodPut, Body: []byte(`[]`)})
		done <- err
	}()

	assert.Eventually(t, func() bool { return tr.InFlight() == 1 }, time.Second, time.Millisecond)
	tr.ReleasePuts(1)
	require.NoError(t, <-done)
	assert.Equal(t, 0, tr.InFlight())
	assert.Equal(t, 1, tr.MaxInFlight())
}

func TestTransport_GateTimeout(t *testing.T) {
	tr := NewTransport(`[]`)
	tr.GateGets()

	_, err := tr.Do(context.Background(), &transport.Request{Method: http.MethodGet, Timeout: 10 * time.Millisecond})
	assert.ErrorIs(t, err, transport.ErrTimeout)
}

func TestTransport_Failures(t *testing.T) {
	ctx := context.Background()
	tr := NewTransport(`[]`)

	tr.FailGets(transport.ErrNetwork)
	_, err := tr.Do(ctx, &transport.Request{Method: http.MethodGet})
	assert.ErrorIs(t, err, transport.ErrNetwork)

	tr.SetPutStatus(http.StatusInternalServerError)
	_, err = tr.Do(ctx, &transport.Request{Method: http.MethodPut, Body: []byte(`[1]`)})
	code, ok := transport.StatusCode(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, `[]`, string(tr.Document()))

	boom := errors.New("boom")
	tr.FailPuts(boom)
	_, err = tr.Do(ctx, &transport.Request{Method: http.MethodPut})
	assert.ErrorIs(t, err, boom)
}

func TestRNG_Notes(t *testing.T) {
	rng := NewRNG(4711)

	notes := rng.Notes(50, 4)
	assert.Len(t, notes, 50)
	for _, n := range notes {
		assert.GreaterOrEqual(t, n.PageIndex, 0)
		assert.Less(t, n.PageIndex, 4)
		assert.Positive(t, n.Width)
	}

	rng.Reset()
	assert.Equal(t, notes[0], rng.Note(4))
	assert.Equal(t, int64(4711), rng.Seed())
}

func TestPages(t *testing.T) {
	rng := NewRNG(1)
	notes := rng.Notes(20, 3)
	notes = append(notes, rng.Note(1))
	notes[len(notes)-1].PageIndex = 5

	pages := Pages(notes)
	require.Len(t, pages, 6)

	total := 0
	for i, page := range pages {
		assert.NotNil(t, page)
		for _, n := range page {
			assert.Equal(t, i, n.PageIndex)
		}
		total += len(page)
	}
	assert.Equal(t, len(notes), total)
	assert.Empty(t, pages[3])
	assert.Empty(t, pages[4])
}
