package extract

import (
	"strings"
	"unicode/utf8"
)

// txtText decodes a plain-text payload. UTF-8 is assumed; payloads that are
// not valid UTF-8 get the latin-1 treatment, which cannot fail and keeps
// legacy exports readable instead of rejecting them.
func txtText(data []byte) (string, error) {
	if utf8.Valid(data) {
		return strings.TrimSpace(string(data)), nil
	}
	runes := make([]rune, len(data))
	for i, b := range data {
		runes[i] = rune(b)
	}
	return strings.TrimSpace(string(runes)), nil
}
