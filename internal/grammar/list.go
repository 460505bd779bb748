package grammar

import (
	"braces.dev/errtrace"

	"github.com/ghettovoice/sipmsg/internal/scan"
)

// ReadCommaList reads item *(LWS "," LWS item).
// The cursor is left right after the last item.
func ReadCommaList(c *scan.Cursor, item func(c *scan.Cursor) error) error {
	for {
		if err := item(c); err != nil {
			return errtrace.Wrap(err)
		}
		if !SkipComma(c) {
			return nil
		}
	}
}

// SkipComma consumes a comma with surrounding whitespace.
// If there is no comma the cursor is not moved.
func SkipComma(c *scan.Cursor) bool {
	m := c.Mark()
	c.SkipSpace()
	if !c.Consume(',') {
		c.Rewind(m)
		return false
	}
	c.SkipSpace()
	return true
}

// ReadTokenList reads a comma-separated list of tokens.
// An empty list is allowed.
func ReadTokenList(c *scan.Cursor) ([]string, error) {
	if c.AtEOL() {
		return nil, nil
	}
	var toks []string
	err := ReadCommaList(c, func(c *scan.Cursor) error {
		tok, err := c.ReadToken()
		if err != nil {
			return errtrace.Wrap(err)
		}
		toks = append(toks, tok)
		return nil
	})
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return toks, nil
}
