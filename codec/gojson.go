package codec

import gojson "github.com/goccy/go-json"

// GoJSON is the default codec for note documents, backed by
// github.com/goccy/go-json. It produces the same document bytes as JSON, so
// stores written with either codec stay readable by both.
type GoJSON struct{}

// Marshal encodes v, typically the flat note record array, to JSON.
func (GoJSON) Marshal(v any) ([]byte, error) { return gojson.Marshal(v) }

// Unmarshal decodes the JSON data into v.
func (GoJSON) Unmarshal(data []byte, v any) error { return gojson.Unmarshal(data, v) }

// Name returns the unique name of the codec ("go-json").
func (GoJSON) Name() string { return "go-json" }
