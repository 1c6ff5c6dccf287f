package normalize

import (
	"strings"
	"unicode/utf8"
)

// Sanitize drops bytes that only ever come from broken extraction:
// NUL and ASCII controls other than \n \r \t, DEL, C1 controls U+0080..U+009F,
// and invalid UTF-8. Clean input is returned unchanged
func Sanitize(s string) string {
	if clean(s) {
		return s
	}
	return strings.Map(func(r rune) rune {
		if bad(r) {
			return -1
		}
		return r
	}, strings.ToValidUTF8(s, ""))
}

func bad(r rune) bool {
	switch {
	case r == '\n' || r == '\r' || r == '\t':
		return false
	case r < 0x20, r == 0x7F:
		return true
	case r >= 0x80 && r <= 0x9F:
		return true
	}
	return false
}

func clean(s string) bool {
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			return false
		}
		if bad(r) {
			return false
		}
		i += size
	}
	return true
}
