// Package grammar implements building blocks shared by URI and header parsers:
// generic parameters with promoted fields, comma-separated lists, q-values and escaping helpers.
package grammar

//go:generate go tool errtrace -w .

import "strings"

// EscapeQuoted escapes '"' and '\' so s can be placed inside a quoted-string.
func EscapeQuoted(s string) string {
	if !strings.ContainsAny(s, `"\`) {
		return s
	}
	var sb strings.Builder
	sb.Grow(len(s) + 2)
	for i := range len(s) {
		if s[i] == '"' || s[i] == '\\' {
			sb.WriteByte('\\')
		}
		sb.WriteByte(s[i])
	}
	return sb.String()
}

// UnescapeQuoted resolves quoted pairs of a quoted-string content.
func UnescapeQuoted(s string) string {
	i := strings.IndexByte(s, '\\')
	if i < 0 {
		return s
	}
	var sb strings.Builder
	sb.Grow(len(s))
	sb.WriteString(s[:i])
	for ; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
		}
		sb.WriteByte(s[i])
	}
	return sb.String()
}
