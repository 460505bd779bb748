package grammar

import (
	"strings"

	"github.com/ghettovoice/sipmsg/internal/scan"
)

const upperhex = "0123456789ABCDEF"

// IsCharUnreserved reports whether b is an unreserved URI character.
func IsCharUnreserved(b byte) bool {
	return scan.Is(b, scan.Alnum) || strings.IndexByte("-_.!~*'()", b) >= 0
}

// Escape percent-encodes bytes of s for which shouldEscape returns true.
// A nil shouldEscape escapes all but unreserved characters.
func Escape(s string, shouldEscape func(b byte) bool) string {
	if shouldEscape == nil {
		shouldEscape = func(b byte) bool { return !IsCharUnreserved(b) && b != '%' }
	}

	n := 0
	for i := range len(s) {
		if shouldEscape(s[i]) {
			n++
		}
	}
	if n == 0 {
		return s
	}

	buf := make([]byte, 0, len(s)+2*n)
	for i := range len(s) {
		if b := s[i]; shouldEscape(b) {
			buf = append(buf, '%', upperhex[b>>4], upperhex[b&15])
		} else {
			buf = append(buf, b)
		}
	}
	return string(buf)
}

// Unescape decodes percent-encoded octets of s.
// Malformed escapes are kept as is.
func Unescape(s string) string {
	i := 0
	for i < len(s) && !isEscape(s, i) {
		i++
	}
	if i == len(s) {
		return s
	}

	buf := make([]byte, 0, len(s))
	buf = append(buf, s[:i]...)
	for i < len(s) {
		if isEscape(s, i) {
			buf = append(buf, unhex(s[i+1])<<4|unhex(s[i+2]))
			i += 3
			continue
		}
		buf = append(buf, s[i])
		i++
	}
	return string(buf)
}

func isEscape(s string, i int) bool {
	return s[i] == '%' && i+2 < len(s) && scan.Is(s[i+1], scan.Hex) && scan.Is(s[i+2], scan.Hex)
}

func unhex(b byte) byte {
	switch {
	case '0' <= b && b <= '9':
		return b - '0'
	case 'a' <= b && b <= 'f':
		return b - 'a' + 10
	default:
		return b - 'A' + 10
	}
}
