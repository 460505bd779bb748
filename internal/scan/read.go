package scan

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"braces.dev/errtrace"
)

// ReadWhile consumes the longest run of bytes belonging to cls.
func (c *Cursor) ReadWhile(cls Class) string {
	start := c.off
	for c.off < len(c.src) && classes[c.src[c.off]]&cls != 0 {
		c.off++
	}
	// none of the classes contain LF
	c.col += c.off - start
	return c.src[start:c.off]
}

// ReadWhileFunc consumes the longest run of bytes accepted by fn.
func (c *Cursor) ReadWhileFunc(fn func(b byte) bool) string {
	start := c.off
	n := 0
	for c.off+n < len(c.src) && fn(c.src[c.off+n]) {
		n++
	}
	c.Skip(n)
	return c.src[start:c.off]
}

// ReadUntil consumes bytes up to, but not including, the first b.
// If b is not found, nothing is consumed and ok is false.
func (c *Cursor) ReadUntil(b byte) (s string, ok bool) {
	i := strings.IndexByte(c.src[c.off:], b)
	if i < 0 {
		return "", false
	}
	s = c.src[c.off : c.off+i]
	c.Skip(i)
	return s, true
}

// ReadUntilAny consumes bytes up to the first byte from set or to the end of input.
func (c *Cursor) ReadUntilAny(set string) string {
	i := strings.IndexAny(c.src[c.off:], set)
	if i < 0 {
		i = len(c.src) - c.off
	}
	s := c.src[c.off : c.off+i]
	c.Skip(i)
	return s
}

// SkipSpace consumes SP and HTAB and returns the number of consumed bytes.
func (c *Cursor) SkipSpace() int {
	return len(c.ReadWhile(Space))
}

// AtEOL reports whether the cursor is at a line terminator or at the end of input.
func (c *Cursor) AtEOL() bool {
	b, ok := c.Peek()
	return !ok || b == '\r' || b == '\n'
}

// ReadLine consumes the rest of the current line without the line terminator.
func (c *Cursor) ReadLine() string {
	return c.ReadUntilAny("\r\n")
}

// ExpectCRLF consumes the CRLF line terminator.
func (c *Cursor) ExpectCRLF() error {
	if s, ok := c.PeekN(2); ok && s == "\r\n" {
		c.Skip(2)
		return nil
	}
	return errtrace.Wrap(c.Unexpected("CRLF"))
}

// Expect consumes b.
func (c *Cursor) Expect(b byte) error {
	if c.Consume(b) {
		return nil
	}
	return errtrace.Wrap(c.Unexpected(strconv.QuoteRune(rune(b))))
}

// ExpectLiteral consumes s, compared case-sensitively.
func (c *Cursor) ExpectLiteral(s string) error {
	if strings.HasPrefix(c.src[c.off:], s) {
		c.Skip(len(s))
		return nil
	}
	return errtrace.Wrap(c.Unexpected(strconv.Quote(s)))
}

// ReadToken consumes a non-empty token.
func (c *Cursor) ReadToken() (string, error) {
	if s := c.ReadWhile(Token); s != "" {
		return s, nil
	}
	return "", errtrace.Wrap(c.Unexpected("token"))
}

// ReadDigits consumes a non-empty run of decimal digits.
func (c *Cursor) ReadDigits() (string, error) {
	if s := c.ReadWhile(Digit); s != "" {
		return s, nil
	}
	return "", errtrace.Wrap(c.Errorf(ErrInvalidNumber, "expected digits"))
}

// ReadUint consumes decimal digits and parses them as an unsigned integer of the given bit size.
func (c *Cursor) ReadUint(bitSize int) (uint64, error) {
	start := c.Mark()
	s, err := c.ReadDigits()
	if err != nil {
		return 0, errtrace.Wrap(err)
	}
	n, err := strconv.ParseUint(s, 10, bitSize)
	if err != nil {
		c.Rewind(start)
		return 0, errtrace.Wrap(c.Errorf(ErrInvalidNumber, "%q overflows uint%d", s, bitSize))
	}
	return n, nil
}

// ReadQuoted consumes a quoted-string and returns its content without the surrounding quotes.
// Quoted pairs are kept as is.
func (c *Cursor) ReadQuoted() (string, error) {
	if err := c.Expect('"'); err != nil {
		return "", errtrace.Wrap(err)
	}
	start := c.off
	for {
		b, ok := c.Peek()
		switch {
		case !ok:
			return "", errtrace.Wrap(c.Unexpected("closing '\"'"))
		case b == '\r' || b == '\n':
			return "", errtrace.Wrap(c.Unexpected("closing '\"'"))
		case b == '"':
			s := c.src[start:c.off]
			c.Advance()
			if !utf8.ValidString(s) {
				return "", errtrace.Wrap(c.Errorf(ErrInvalidUTF8, "quoted string"))
			}
			return s, nil
		case b == '\\':
			c.Advance()
			if c.AtEOL() {
				return "", errtrace.Wrap(c.Unexpected("escaped character"))
			}
			c.Advance()
		default:
			c.Advance()
		}
	}
}

// ReadComment consumes a parenthesized comment and returns its content without the outer parentheses.
// Nested comments and quoted pairs are kept as is.
func (c *Cursor) ReadComment() (string, error) {
	if err := c.Expect('('); err != nil {
		return "", errtrace.Wrap(err)
	}
	start := c.off
	depth := 1
	for {
		b, ok := c.Peek()
		if !ok || b == '\r' || b == '\n' {
			return "", errtrace.Wrap(c.Unexpected("closing ')'"))
		}
		switch b {
		case '\\':
			c.Advance()
			if c.AtEOL() {
				return "", errtrace.Wrap(c.Unexpected("escaped character"))
			}
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				s := c.src[start:c.off]
				c.Advance()
				if !utf8.ValidString(s) {
					return "", errtrace.Wrap(c.Errorf(ErrInvalidUTF8, "comment"))
				}
				return s, nil
			}
		}
		c.Advance()
	}
}

// ReadText consumes the rest of the line as UTF-8 text with trailing whitespace trimmed.
func (c *Cursor) ReadText() (string, error) {
	start := c.Mark()
	s := c.ReadLine()
	if !utf8.ValidString(s) {
		c.Rewind(start)
		return "", errtrace.Wrap(c.Errorf(ErrInvalidUTF8, ""))
	}
	return strings.TrimRight(s, " \t"), nil
}
