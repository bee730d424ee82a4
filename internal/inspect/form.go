package inspect

import (
	"net/url"
	"strings"
)

// ParseQuery decodes a query string or form-urlencoded body. Values for a
// repeated key are kept in order. Components that fail to unescape are kept
// verbatim, so ParseQuery never fails.
func ParseQuery(raw string) map[string][]string {
	m := make(map[string][]string)
	for _, pair := range strings.Split(raw, "&") {
		if pair == "" {
			continue
		}
		k, v, _ := strings.Cut(pair, "=")
		k = unescape(k)
		m[k] = append(m[k], unescape(v))
	}
	return m
}

func unescape(s string) string {
	if u, err := url.QueryUnescape(s); err == nil {
		return u
	}
	return s
}

// parseForm flattens a form-urlencoded body to its first value per key.
func parseForm(raw string) map[string]string {
	form := make(map[string]string)
	for k, vs := range ParseQuery(raw) {
		form[k] = vs[0]
	}
	return form
}
