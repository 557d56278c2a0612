// Package pagination encodes the opaque page tokens handed to API clients.
package pagination

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

const separator = "\x1f"

// ErrInvalidToken is returned for tokens that were not produced by EncodeCursor.
var ErrInvalidToken = errors.New("invalid pagination token")

// EncodeCursor packs the sort-key fields of the last row of a page into a URL-safe token.
func EncodeCursor(fields ...string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(strings.Join(fields, separator)))
}

// DecodeCursor unpacks a token made by EncodeCursor. want is the number of fields the
// caller's ordering uses; a token with a different count, or an empty field, is rejected.
func DecodeCursor(token string, want int) ([]string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	fields := strings.Split(string(raw), separator)
	if len(fields) != want {
		return nil, fmt.Errorf("%w: expected %d fields, got %d", ErrInvalidToken, want, len(fields))
	}
	for _, f := range fields {
		if f == "" {
			return nil, fmt.Errorf("%w: empty field", ErrInvalidToken)
		}
	}
	return fields, nil
}
