package codec

import (
	"errors"
	"fmt"
	"testing"

	"github.com/hupe1980/notesync/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var codecs = []Codec{JSON{}, GoJSON{}}

func stripIDs(pages [][]model.Note) [][]model.Note {
	out := make([][]model.Note, len(pages))
	for i, page := range pages {
		out[i] = make([]model.Note, len(page))
		for j, n := range page {
			n.ID = model.NilID
			out[i][j] = n
		}
	}
	return out
}

func TestEncodeEmpty(t *testing.T) {
	for _, c := range codecs {
		t.Run(c.Name(), func(t *testing.T) {
			data, err := Encode(c, nil)
			require.NoError(t, err)
			assert.JSONEq(t, `[]`, string(data))
		})
	}
}

func TestEncodeWireFormat(t *testing.T) {
	pages := [][]model.Note{
		{{PageIndex: 0, X: 0, Y: 0, Width: 10, Height: 10, Text: "a"}},
		{},
		{{PageIndex: 2, X: 1.5, Y: 2, Width: 3, Height: 4, Text: "b"}},
	}

	for _, c := range codecs {
		t.Run(c.Name(), func(t *testing.T) {
			data, err := Encode(c, pages)
			require.NoError(t, err)
			assert.JSONEq(t, `[
				{"pageIndex":0,"x":0,"y":0,"width":10,"height":10,"text":"a"},
				{"pageIndex":2,"x":1.5,"y":2,"width":3,"height":4,"text":"b"}
			]`, string(data))
		})
	}
}

func TestEncodeDropsTrailingEmptyPages(t *testing.T) {
	note := model.Note{Y: 1, Text: "x"}
	short := [][]model.Note{{}, {note}}
	long := [][]model.Note{{}, {note}, {}, {}, {}}

	a, err := Encode(Default, short)
	require.NoError(t, err)
	b, err := Encode(Default, long)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestRoundTrip(t *testing.T) {
	pages := [][]model.Note{
		{
			{PageIndex: 0, X: 72, Y: 144, Width: 288, Height: 72, Text: "first"},
			{PageIndex: 0, X: 10, Y: 200, Width: 20, Height: 20, Text: "second"},
		},
		{},
		{},
		{{PageIndex: 3, X: 0, Y: 0, Width: 1, Height: 1, Text: "ünïcode ✓"}},
	}

	for _, c := range codecs {
		t.Run(c.Name(), func(t *testing.T) {
			data, err := Encode(c, pages)
			require.NoError(t, err)

			got, err := Decode(c, data)
			require.NoError(t, err)
			assert.Equal(t, pages, stripIDs(got))

			for _, page := range got {
				for _, n := range page {
					assert.False(t, n.ID.IsNil())
				}
			}
		})
	}
}

func TestDecodeGroupsOutOfOrderRecords(t *testing.T) {
	data := []byte(`[
		{"pageIndex":2,"x":0,"y":0,"width":1,"height":1,"text":"c"},
		{"pageIndex":0,"x":0,"y":0,"width":1,"height":1,"text":"a"},
		{"pageIndex":2,"x":0,"y":5,"width":1,"height":1,"text":"d"}
	]`)

	got, err := Decode(Default, data)
	require.NoError(t, err)
	require.Len(t, got, 3)
	require.Len(t, got[0], 1)
	assert.Empty(t, got[1])
	require.Len(t, got[2], 2)
	assert.Equal(t, "c", got[2][0].Text)
	assert.Equal(t, "d", got[2][1].Text)
}

func TestDecodeParseFailure(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"syntax", `[{"pageIndex":`},
		{"empty", ``},
		{"object", `{"pageIndex":0}`},
		{"null", `null`},
	}

	for _, c := range codecs {
		for _, tt := range tests {
			t.Run(c.Name()+"/"+tt.name, func(t *testing.T) {
				_, err := Decode(c, []byte(tt.data))
				var pe *ErrParse
				require.True(t, errors.As(err, &pe), "got %v", err)
				assert.NotEmpty(t, pe.Message)
			})
		}
	}
}

func TestDecodeValidationFailure(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		reason string
	}{
		{"not object", `[1]`, "record is not an object"},
		{"missing pageIndex", `[{"x":0,"y":0,"width":1,"height":1,"text":""}]`, "pageIndex must be a number"},
		{"string pageIndex", `[{"pageIndex":"0","x":0,"y":0,"width":1,"height":1,"text":""}]`, "pageIndex must be a number"},
		{"negative pageIndex", `[{"pageIndex":-1,"x":0,"y":0,"width":1,"height":1,"text":""}]`, "pageIndex must be a non-negative integer"},
		{"fractional pageIndex", `[{"pageIndex":1.5,"x":0,"y":0,"width":1,"height":1,"text":""}]`, "pageIndex must be a non-negative integer"},
		{"huge pageIndex", `[{"pageIndex":2000000000,"x":0,"y":0,"width":1,"height":1,"text":""}]`, "pageIndex must not exceed 1048575"},
		{"pageIndex beyond int", `[{"pageIndex":1e19,"x":0,"y":0,"width":1,"height":1,"text":""}]`, "pageIndex must not exceed 1048575"},
		{"string x", `[{"pageIndex":0,"x":"0","y":0,"width":1,"height":1,"text":""}]`, "x must be a number"},
		{"missing height", `[{"pageIndex":0,"x":0,"y":0,"width":1,"text":""}]`, "height must be a number"},
		{"numeric text", `[{"pageIndex":0,"x":0,"y":0,"width":1,"height":1,"text":5}]`, "text must be a string"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(Default, []byte(tt.data))
			var ve *ErrValidation
			require.True(t, errors.As(err, &ve), "got %v", err)
			assert.Equal(t, 0, ve.Index)
			assert.Equal(t, tt.reason, ve.Reason)
			assert.NotNil(t, ve.Record)
		})
	}
}

func TestByName(t *testing.T) {
	for _, c := range codecs {
		got, ok := ByName(c.Name())
		require.True(t, ok)
		assert.Equal(t, c.Name(), got.Name())
	}
	_, ok := ByName("xml")
	assert.False(t, ok)
}

func TestDecodeAcceptsHighestPageIndex(t *testing.T) {
	data := fmt.Sprintf(`[{"pageIndex":%d,"x":0,"y":0,"width":1,"height":1,"text":"last"}]`, model.MaxPageIndex)

	pages, err := Decode(Default, []byte(data))
	require.NoError(t, err)
	require.Len(t, pages, model.MaxPageIndex+1)
	assert.Equal(t, "last", pages[model.MaxPageIndex][0].Text)
}
