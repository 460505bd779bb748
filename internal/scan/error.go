package scan

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ghettovoice/sipmsg/internal/errorutil"
	"github.com/ghettovoice/sipmsg/internal/util"
)

// Error kinds. Every [*Error] unwraps to exactly one of them.
const (
	ErrUnexpectedEOF     errorutil.Error = "unexpected end of input"
	ErrUnexpectedByte    errorutil.Error = "unexpected byte"
	ErrInvalidUTF8       errorutil.Error = "invalid UTF-8"
	ErrInvalidNumber     errorutil.Error = "invalid numeric value"
	ErrMissingHeader     errorutil.Error = "missing mandatory header"
	ErrUnsupportedScheme errorutil.Error = "unsupported URI scheme"
	ErrInvalidHeader     errorutil.Error = "invalid header value"
	ErrInvalidStartLine  errorutil.Error = "invalid start line"
)

// ErrorClass tells which layer of the grammar rejected the input.
type ErrorClass uint8

const (
	// ClassGrammar marks a violation of a header, URI or parameter grammar.
	ClassGrammar ErrorClass = iota
	// ClassFraming marks a malformed start line, a missing line terminator or a truncated message.
	ClassFraming
	// ClassSemantic marks a syntactically valid message that misses mandatory headers.
	ClassSemantic
)

func (cls ErrorClass) String() string {
	switch cls {
	case ClassGrammar:
		return "grammar"
	case ClassFraming:
		return "framing"
	case ClassSemantic:
		return "semantic"
	default:
		return "unknown"
	}
}

const contextRadius = 24

// Error describes a parse failure.
type Error struct {
	// Kind is the sentinel error describing the failure.
	Kind error
	// Class is the grammar layer that rejected the input.
	Class ErrorClass
	// Header is the name of the header being parsed, if any.
	Header string
	// Pos is the position where the failure was detected.
	Pos Pos
	// Context is a snippet of the input line around Pos.
	Context string
	// Detail is an optional human readable explanation.
	Detail string
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}

	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)

	sb.WriteString("parse ")
	if e.Header != "" {
		sb.WriteString(e.Header)
		sb.WriteString(" header ")
	}
	sb.WriteString("at ")
	sb.WriteString(strconv.Itoa(e.Pos.Line))
	sb.WriteByte(':')
	sb.WriteString(strconv.Itoa(e.Pos.Column))
	sb.WriteString(": ")
	if e.Kind != nil {
		sb.WriteString(e.Kind.Error())
	} else {
		sb.WriteString("syntax error")
	}
	if e.Detail != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Detail)
	}
	if e.Context != "" {
		sb.WriteString(" near ")
		sb.WriteString(strconv.Quote(e.Context))
	}
	return sb.String()
}

func (e *Error) Unwrap() error { return e.Kind }

// Grammar reports whether the error is a grammar violation.
func (e *Error) Grammar() bool { return e.Class == ClassGrammar }

// Framing reports whether the error is a framing failure.
func (e *Error) Framing() bool { return e.Class == ClassFraming }

// Semantic reports whether the error is a semantic failure.
func (e *Error) Semantic() bool { return e.Class == ClassSemantic }

// Errorf creates an error of the given kind at the current position.
func (c *Cursor) Errorf(kind error, format string, args ...any) *Error {
	e := &Error{
		Kind:    kind,
		Pos:     c.Pos(),
		Context: c.context(),
	}
	if format != "" {
		if len(args) == 0 {
			e.Detail = format
		} else {
			e.Detail = fmt.Sprintf(format, args...)
		}
	}
	return e
}

// Unexpected creates an error reporting that want was expected at the current position.
func (c *Cursor) Unexpected(want string) *Error {
	b, ok := c.Peek()
	if !ok {
		return c.Errorf(ErrUnexpectedEOF, "expected %s", want)
	}
	return c.Errorf(ErrUnexpectedByte, "expected %s, got %q", want, b)
}

func (c *Cursor) context() string {
	start := strings.LastIndexByte(c.src[:c.off], '\n') + 1
	start = max(start, c.off-contextRadius)
	end := len(c.src)
	if i := strings.IndexAny(c.src[c.off:], "\r\n"); i >= 0 {
		end = c.off + i
	}
	end = min(end, c.off+contextRadius)
	return c.src[start:end]
}

// AsError returns the [*Error] from the err chain.
func AsError(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

// WithHeader attaches the header name to the parse error in the err chain
// unless it already carries one.
func WithHeader(err error, name string) error {
	if e, ok := AsError(err); ok && e.Header == "" {
		e.Header = name
	}
	return err //errtrace:skip
}

// WithClass sets the class of the parse error in the err chain.
func WithClass(err error, cls ErrorClass) error {
	if e, ok := AsError(err); ok {
		e.Class = cls
	}
	return err //errtrace:skip
}
