// Package format renders command results for the CLI.
package format

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

const (
	JSON  = "json"
	EDN   = "edn"
	Table = "table"
)

// Write writes v in the requested format (json when empty).
//
// table is only meaningful for values implementing Tabular; anything else is printed as a
// two-column key/value table of its JSON fields.
func Write(w io.Writer, v any, format string, pretty bool) error {
	switch format {
	case "", JSON:
		return WriteJSON(w, v, pretty)
	case EDN:
		return WriteEDN(w, v, pretty)
	case Table:
		return WriteTable(w, v)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// WriteJSON writes one JSON document followed by a newline.
func WriteJSON(w io.Writer, v any, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

// toGeneric round-trips v through JSON so json tags decide the field names everywhere.
func toGeneric(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var x any
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	if err := dec.Decode(&x); err != nil {
		return nil, err
	}
	return x, nil
}
