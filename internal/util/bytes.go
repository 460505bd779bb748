package util

import "unsafe"

// UnsafeString returns a string sharing memory with b.
// The caller must guarantee that b is never modified while the string is in use.
func UnsafeString(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return unsafe.String(unsafe.SliceData(b), len(b))
}

// UnsafeBytes returns a byte slice sharing memory with s.
// The returned slice must never be modified.
func UnsafeBytes(s string) []byte {
	if s == "" {
		return nil
	}
	return unsafe.Slice(unsafe.StringData(s), len(s))
}
