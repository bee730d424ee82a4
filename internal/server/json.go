package server

import (
	"bytes"
	"encoding/json"
)

// encodeJSON renders v with <, > and & left unescaped. The result ends in a
// newline. A non-empty indent pretty-prints.
func encodeJSON(v any, indent string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// compactJSON is encodeJSON without the trailing newline.
func compactJSON(v any) ([]byte, error) {
	bs, err := encodeJSON(v, "")
	if err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(bs, []byte("\n")), nil
}
