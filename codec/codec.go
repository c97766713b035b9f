// Package codec centralizes the wire encoding of note documents.
//
// A document is a flat JSON array of records, each carrying its page index:
//
//	[{"pageIndex":0,"x":72,"y":144,"width":288,"height":72,"text":"..."}]
//
// The serializer itself is pluggable through Codec so callers can trade the
// standard library for a faster JSON implementation without changing bytes
// on the wire.
package codec

import "fmt"

// Codec encodes/decodes values.
// Implementations must be safe for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

// ByName returns a built-in codec by its stable name.
func ByName(name string) (Codec, bool) {
	switch name {
	case "json":
		return JSON{}, true
	case "go-json":
		return GoJSON{}, true
	default:
		return nil, false
	}
}

// MustMarshal is a helper for internal tests.
func MustMarshal(c Codec, v any) []byte {
	if c == nil {
		c = Default
	}
	b, err := c.Marshal(v)
	if err != nil {
		panic(fmt.Errorf("codec %s marshal failed: %w", c.Name(), err))
	}
	return b
}
