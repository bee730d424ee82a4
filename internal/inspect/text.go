package inspect

import (
	"fmt"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
)

// decodeText returns bs as a string when it is valid UTF-8, otherwise a
// placeholder naming its size and detected type.
func decodeText(bs []byte) string {
	if utf8.Valid(bs) {
		return string(bs)
	}
	return fmt.Sprintf("[binary data: %d bytes, %s]", len(bs), detectType(bs))
}

func placeholder(bs []byte) string {
	return fmt.Sprintf("[binary data: %d bytes]", len(bs))
}

func detectType(bs []byte) string {
	return mimetype.Detect(bs).String()
}
