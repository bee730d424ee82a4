package inspect

import (
	"bytes"
	"encoding/json"
	"fmt"
)

type BodyKind int

const (
	BodyNone BodyKind = iota
	BodyJSON
	BodyForm
	BodyMultipart
)

func (k BodyKind) String() string {
	switch k {
	case BodyNone:
		return "none"
	case BodyJSON:
		return "json"
	case BodyForm:
		return "form"
	case BodyMultipart:
		return "multipart"
	default:
		return "invalid"
	}
}

func (k BodyKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// Body is the parsed request body. Only the field matching Kind is set.
type Body struct {
	Kind  BodyKind
	JSON  any
	Form  map[string]string
	Parts map[string]Part
}

func (b Body) MarshalJSON() ([]byte, error) {
	switch b.Kind {
	case BodyNone:
		return []byte("null"), nil
	case BodyJSON:
		return marshal(b.JSON)
	case BodyForm:
		return marshal(b.Form)
	case BodyMultipart:
		return marshal(b.Parts)
	default:
		return nil, fmt.Errorf("invalid body kind %d", b.Kind)
	}
}

// marshal is json.Marshal with <, > and & left unescaped. An encoder with
// SetEscapeHTML(false) copies a MarshalJSON result unchanged, so escaping here
// would survive into its output.
func marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Part describes one section of a multipart/form-data body
type Part struct {
	Name         string `json:"name"`
	Filename     string `json:"filename,omitempty"`
	ContentType  string `json:"content_type,omitempty"`
	Content      string `json:"content"`
	Size         int    `json:"size"`
	DetectedType string `json:"detected_type,omitempty"`
}

type ParsedRequest struct {
	Method     string              `json:"method"`
	Path       string              `json:"path"`
	Query      map[string][]string `json:"query"`
	Headers    map[string]string   `json:"headers"`
	BodyRaw    string              `json:"body_raw"`
	BodyType   BodyKind            `json:"body_type"`
	BodyParsed Body                `json:"body_parsed"`
	RemoteAddr string              `json:"remote_addr"`
}
