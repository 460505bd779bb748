package header

import (
	"strconv"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipmsg/internal/grammar"
	"github.com/ghettovoice/sipmsg/internal/scan"
)

// Shared setters of promoted parameters.
// An error returned from a setter becomes the kind of the resulting parse error.

func tokenParam(p Param) (string, error) {
	if p.Quoted || !scan.IsToken(p.Value) {
		return "", scan.ErrUnexpectedByte
	}
	return p.Value, nil
}

func uintParam(p Param, bitSize int) (uint64, error) {
	if p.Quoted {
		return 0, scan.ErrUnexpectedByte
	}
	n, err := strconv.ParseUint(p.Value, 10, bitSize)
	if err != nil {
		return 0, scan.ErrInvalidNumber
	}
	return n, nil
}

func qParam(p Param) (Q, error) {
	if p.Quoted {
		return Q{}, scan.ErrUnexpectedByte
	}
	return grammar.ParseQ(p.Value)
}

func readHdrParams[T any](c *scan.Cursor, dst *T, fields grammar.Fields[T]) (Params, error) {
	return errtrace.Wrap2(grammar.ReadParams(c, dst, grammar.HeaderParams, fields))
}

// readNumber reads an unsigned integer that must end the value or be followed by whitespace.
func readNumber(c *scan.Cursor, bitSize int) (uint64, error) {
	n, err := c.ReadUint(bitSize)
	if err != nil {
		return 0, errtrace.Wrap(err)
	}
	if b, ok := c.Peek(); ok && b != ' ' && b != '\t' && b != '\r' && b != '\n' && b != ',' && b != ';' && b != '(' {
		return 0, errtrace.Wrap(c.Errorf(scan.ErrInvalidNumber, "unexpected %q after digits", b))
	}
	return n, nil
}
