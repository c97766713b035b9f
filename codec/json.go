package codec

import (
	"encoding/json"
)

// JSON is the standard-library JSON codec. Selecting it by name ("json")
// trades decode speed for the reference implementation; documents written
// with it are byte-identical to GoJSON output.
type JSON struct{}

// Marshal encodes v, typically the flat note record array, to JSON.
func (JSON) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

// Unmarshal decodes the JSON data into v.
func (JSON) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

// Name returns the unique name of the codec ("json").
func (JSON) Name() string { return "json" }

// Default is the codec used by Encode, Decode and the store when none is set.
var Default Codec = GoJSON{}
