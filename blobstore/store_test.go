package blobstore

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStoreContract(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	_, err := store.Get(ctx, "notes/doc.json")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Put(ctx, "notes/doc.json", []byte(`[]`)))
	got, err := store.Get(ctx, "notes/doc.json")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), got)

	require.NoError(t, store.Put(ctx, "notes/doc.json", []byte(`[{"pageIndex":0}]`)))
	got, err = store.Get(ctx, "notes/doc.json")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[{"pageIndex":0}]`), got)

	require.NoError(t, store.Delete(ctx, "notes/doc.json"))
	require.NoError(t, store.Delete(ctx, "notes/doc.json"))
	_, err = store.Get(ctx, "notes/doc.json")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore(t *testing.T) {
	testStoreContract(t, NewMemoryStore())
}

func TestMemoryStoreCopies(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	data := []byte("abc")
	require.NoError(t, store.Put(ctx, "k", data))
	data[0] = 'x'

	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), got)

	got[1] = 'y'
	again, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), again)
}

func TestMemoryStoreHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := NewMemoryStore()
	assert.ErrorIs(t, store.Put(ctx, "k", nil), context.Canceled)
	_, err := store.Get(ctx, "k")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLocalStore(t *testing.T) {
	testStoreContract(t, NewLocalStore(t.TempDir()))
}

func TestLocalStoreConfinesKeys(t *testing.T) {
	root := t.TempDir()
	store := NewLocalStore(filepath.Join(root, "data"))
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "../../escape.json", []byte("x")))
	_, err := os.Stat(filepath.Join(root, "data", "escape.json"))
	assert.NoError(t, err)

	assert.Error(t, store.Put(ctx, "", []byte("x")))
}

func TestCompressedStore(t *testing.T) {
	for _, c := range []Compression{CompressionNone, CompressionLZ4, CompressionZSTD} {
		t.Run(c.String(), func(t *testing.T) {
			testStoreContract(t, NewCompressedStore(NewMemoryStore(), c))
		})
	}
}

func TestCompressedStoreShrinksRepetitiveData(t *testing.T) {
	ctx := context.Background()
	data := bytes.Repeat([]byte(`{"pageIndex":0,"x":72,"y":144,"width":288,"height":72,"text":"note"},`), 200)

	for _, c := range []Compression{CompressionLZ4, CompressionZSTD} {
		t.Run(c.String(), func(t *testing.T) {
			inner := NewMemoryStore()
			store := NewCompressedStore(inner, c)
			require.NoError(t, store.Put(ctx, "doc", data))

			raw, err := inner.Get(ctx, "doc")
			require.NoError(t, err)
			assert.Less(t, len(raw), len(data))

			got, err := store.Get(ctx, "doc")
			require.NoError(t, err)
			assert.Equal(t, data, got)
		})
	}
}

func TestCompressedStoreReadsUnframedData(t *testing.T) {
	ctx := context.Background()
	inner := NewMemoryStore()
	require.NoError(t, inner.Put(ctx, "legacy", []byte(`[]`)))

	got, err := NewCompressedStore(inner, CompressionZSTD).Get(ctx, "legacy")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), got)
}

func TestCompressedStoreRejectsCorruptFrame(t *testing.T) {
	ctx := context.Background()
	inner := NewMemoryStore()

	framed, err := encodeFrame([]byte("hello hello hello hello"), CompressionZSTD)
	require.NoError(t, err)
	framed = framed[:len(framed)-3]
	require.NoError(t, inner.Put(ctx, "doc", framed))

	_, err = NewCompressedStore(inner, CompressionZSTD).Get(ctx, "doc")
	assert.ErrorIs(t, err, ErrCorruptFrame)
}

func TestParseCompression(t *testing.T) {
	for _, c := range []Compression{CompressionNone, CompressionLZ4, CompressionZSTD} {
		got, err := ParseCompression(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}
	_, err := ParseCompression("brotli")
	assert.Error(t, err)
}
