// Package codec implements the reversible text encoding used for stored
// contact info and passwords. It is base64, not encryption; the on-disk
// format predates this implementation and must stay byte-compatible.
package codec

import (
	"encoding/base64"
	"fmt"
)

// Encode returns the base64 form of s.
func Encode(s string) string {
	return base64.StdEncoding.EncodeToString([]byte(s))
}

// Decode reverses Encode.
func Decode(s string) (string, error) {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return "", fmt.Errorf("decoding %q: %w", s, err)
	}
	return string(b), nil
}
