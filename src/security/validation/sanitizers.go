package validation

import (
	"strings"
	"unicode"
)

// StripUnprintable removes non-printable characters such as zero-width
// spaces and byte order marks, keeping tab, newline and carriage return.
func StripUnprintable(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) || r == '\t' || r == '\n' || r == '\r' {
			return r
		}
		return -1
	}, s)
}
