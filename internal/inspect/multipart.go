package inspect

import (
	"bytes"
	"io"
	"mime"
	"mime/multipart"
	"unicode/utf8"
)

// parseMultipart returns one Part per named form field. Any framing error,
// including a body without its closing delimiter, discards the whole body.
func parseMultipart(body []byte, boundary string) (map[string]Part, bool) {
	if boundary == "" || !bytes.Contains(body, []byte("--"+boundary+"--")) {
		return nil, false
	}
	mr := multipart.NewReader(bytes.NewReader(body), boundary)
	parts := make(map[string]Part)
	for {
		p, err := mr.NextPart()
		// NextPart wraps io.EOF for a truncated body, only a bare io.EOF is a clean end
		if err == io.EOF {
			return parts, true
		}
		if err != nil {
			return nil, false
		}
		content, err := io.ReadAll(p)
		p.Close()
		if err != nil {
			return nil, false
		}
		name := p.FormName()
		if name == "" {
			continue
		}
		part := Part{
			Name:        name,
			Filename:    filename(p),
			ContentType: p.Header.Get("Content-Type"),
			Size:        len(content),
		}
		if utf8.Valid(content) {
			part.Content = string(content)
		} else {
			part.Content = placeholder(content)
			part.DetectedType = detectType(content)
		}
		parts[name] = part
	}
}

// filename is the Content-Disposition filename exactly as sent.
// Unlike multipart.Part.FileName, directory components are kept.
func filename(p *multipart.Part) string {
	_, params, err := mime.ParseMediaType(p.Header.Get("Content-Disposition"))
	if err != nil {
		return ""
	}
	return params["filename"]
}
