// Package scan implements the low-level machinery of the SIP grammar: a position-tracking cursor
// over an immutable input buffer, byte-class tables and primitive readers.
package scan

//go:generate go tool errtrace -w .

import "strings"

// Pos is a position inside the input buffer.
// Line and Column are 1-based, Column counts bytes.
type Pos struct {
	Offset int
	Line   int
	Column int
}

// Cursor is a position-tracking view over an immutable input buffer.
// All strings returned by the cursor are substrings of the source, no bytes are copied.
type Cursor struct {
	src  string
	off  int
	line int
	col  int
}

// NewCursor returns a cursor positioned at the beginning of src.
func NewCursor(src string) *Cursor {
	return &Cursor{src: src, line: 1, col: 1}
}

// Source returns the whole underlying buffer.
func (c *Cursor) Source() string { return c.src }

// Peek returns the current byte without consuming it.
func (c *Cursor) Peek() (byte, bool) {
	if c.off >= len(c.src) {
		return 0, false
	}
	return c.src[c.off], true
}

// PeekAt returns the byte located i bytes after the current position.
func (c *Cursor) PeekAt(i int) (byte, bool) {
	if i < 0 || c.off+i >= len(c.src) {
		return 0, false
	}
	return c.src[c.off+i], true
}

// PeekN returns the next k bytes without consuming them.
func (c *Cursor) PeekN(k int) (string, bool) {
	if k < 0 || c.off+k > len(c.src) {
		return "", false
	}
	return c.src[c.off : c.off+k], true
}

// Is reports whether the current byte equals b.
func (c *Cursor) Is(b byte) bool {
	return c.off < len(c.src) && c.src[c.off] == b
}

// Advance consumes and returns the current byte.
func (c *Cursor) Advance() (byte, bool) {
	if c.off >= len(c.src) {
		return 0, false
	}
	b := c.src[c.off]
	c.off++
	if b == '\n' {
		c.line++
		c.col = 1
	} else {
		c.col++
	}
	return b, true
}

// Skip consumes up to n bytes.
func (c *Cursor) Skip(n int) {
	end := min(c.off+n, len(c.src))
	s := c.src[c.off:end]
	if nl := strings.Count(s, "\n"); nl > 0 {
		c.line += nl
		c.col = len(s) - strings.LastIndexByte(s, '\n')
	} else {
		c.col += len(s)
	}
	c.off = end
}

// Consume consumes the current byte if it equals b.
func (c *Cursor) Consume(b byte) bool {
	if !c.Is(b) {
		return false
	}
	c.Advance()
	return true
}

// EOF reports whether the whole input has been consumed.
func (c *Cursor) EOF() bool { return c.off >= len(c.src) }

// Offset returns the current byte offset.
func (c *Cursor) Offset() int { return c.off }

// Pos returns the current position.
func (c *Cursor) Pos() Pos { return Pos{Offset: c.off, Line: c.line, Column: c.col} }

// Remaining returns the unconsumed part of the input.
func (c *Cursor) Remaining() string { return c.src[c.off:] }

// Slice returns the input bytes in range [from, to).
func (c *Cursor) Slice(from, to int) string { return c.src[from:to] }

// Since returns the input bytes consumed since offset from.
func (c *Cursor) Since(from int) string { return c.src[from:c.off] }

// Mark is a saved cursor position.
type Mark struct {
	off, line, col int
}

// Mark saves the current position.
// Marks are used for lookahead inside a single line only.
func (c *Cursor) Mark() Mark { return Mark{c.off, c.line, c.col} }

// Rewind restores a position saved by [Cursor.Mark].
func (c *Cursor) Rewind(m Mark) {
	c.off, c.line, c.col = m.off, m.line, m.col
}
