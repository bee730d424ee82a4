// Package inspect turns an incoming HTTP request into a JSON-serializable
// description of everything the client sent.
package inspect

import (
	"bytes"
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"strings"
	"unicode/utf8"
)

const (
	MediaTypeJSON      = "application/json"
	MediaTypeForm      = "application/x-www-form-urlencoded"
	MediaTypeMultipart = "multipart/form-data"
)

// Inspect describes r, whose body has already been read into body. It never
// fails: a body that does not parse as its declared content type is reported
// as BodyNone with the raw text still in BodyRaw.
func Inspect(r *http.Request, body []byte) *ParsedRequest {
	pr := &ParsedRequest{
		Method:     r.Method,
		Query:      map[string][]string{},
		Headers:    Headers(r),
		BodyRaw:    decodeText(body),
		RemoteAddr: r.RemoteAddr,
	}
	if r.URL != nil {
		// Escaped form, so /a%2Fb and /a/b stay distinct
		pr.Path = r.URL.EscapedPath()
		pr.Query = ParseQuery(r.URL.RawQuery)
	}
	pr.BodyParsed = ParseBody(pr.Headers["Content-Type"], body)
	pr.BodyType = pr.BodyParsed.Kind
	return pr
}

// Headers flattens r's headers to one value per canonical name, the last one
// received. Host and Transfer-Encoding are moved out of the header map by
// net/http and are put back.
func Headers(r *http.Request) map[string]string {
	m := make(map[string]string, len(r.Header)+2)
	for k, vs := range r.Header {
		if len(vs) == 0 {
			continue
		}
		m[http.CanonicalHeaderKey(k)] = vs[len(vs)-1]
	}
	if r.Host != "" {
		m["Host"] = r.Host
	}
	if len(r.TransferEncoding) > 0 {
		m["Transfer-Encoding"] = strings.Join(r.TransferEncoding, ", ")
	}
	return m
}

// ParseBody selects a body parser from contentType.
func ParseBody(contentType string, body []byte) Body {
	if contentType == "" {
		return Body{}
	}
	// ParseMediaType still returns the media type when only the parameters are malformed
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil && mediaType == "" {
		return Body{}
	}
	switch {
	case mediaType == MediaTypeJSON || strings.HasSuffix(mediaType, "+json"):
		if v, ok := decodeJSON(body); ok {
			return Body{Kind: BodyJSON, JSON: v}
		}
	case mediaType == MediaTypeForm:
		return Body{Kind: BodyForm, Form: parseForm(string(body))}
	case mediaType == MediaTypeMultipart:
		if parts, ok := parseMultipart(body, params["boundary"]); ok {
			return Body{Kind: BodyMultipart, Parts: parts}
		}
	}
	return Body{}
}

// decodeJSON accepts exactly one JSON value with nothing but whitespace after
// it. Numbers are kept as json.Number so they re-encode unchanged. Invalid
// UTF-8 is rejected rather than replaced with U+FFFD.
func decodeJSON(body []byte) (any, bool) {
	if !utf8.Valid(body) {
		return nil, false
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, false
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, false
	}
	return v, true
}
