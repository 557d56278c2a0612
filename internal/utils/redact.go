package utils

import (
	"strings"
	"unicode/utf8"
)

const maskRune = "*"

// MaskTail keeps the first keep runes of s and replaces the rest with '*'.
func MaskTail(s string, keep int) string {
	n := utf8.RuneCountInString(s)
	if keep < 0 {
		keep = 0
	}
	if n <= keep {
		return s
	}
	var b strings.Builder
	i := 0
	for _, r := range s {
		if i < keep {
			b.WriteRune(r)
		} else {
			b.WriteString(maskRune)
		}
		i++
	}
	return b.String()
}

// RedactEmail masks the local part of an email, keeping its first rune and the domain:
// "jane.doe@example.com" becomes "j*******@example.com". Strings without '@' are masked whole.
func RedactEmail(email string) string {
	at := strings.LastIndexByte(email, '@')
	if at <= 0 {
		return MaskTail(email, 0)
	}
	return MaskTail(email[:at], 1) + email[at:]
}
