package sip

import (
	"github.com/ghettovoice/sipmsg/internal/errorutil"
	"github.com/ghettovoice/sipmsg/internal/scan"
)

// ParseError describes a message parse failure.
// It carries the error kind, the class, the header name and the position of the failure.
type ParseError = scan.Error

// ErrorClass tells which layer of the grammar rejected the input.
type ErrorClass = scan.ErrorClass

// Error classes.
const (
	ClassGrammar  = scan.ClassGrammar
	ClassFraming  = scan.ClassFraming
	ClassSemantic = scan.ClassSemantic
)

// Parse error kinds. Use [errors.Is] to test the error returned by parsers.
const (
	ErrUnexpectedEOF     = scan.ErrUnexpectedEOF
	ErrUnexpectedByte    = scan.ErrUnexpectedByte
	ErrInvalidUTF8       = scan.ErrInvalidUTF8
	ErrInvalidNumber     = scan.ErrInvalidNumber
	ErrMissingHeader     = scan.ErrMissingHeader
	ErrUnsupportedScheme = scan.ErrUnsupportedScheme
	ErrInvalidHeader     = scan.ErrInvalidHeader
	ErrInvalidStartLine  = scan.ErrInvalidStartLine
)

// Message errors.
const (
	ErrInvalidMessage  Error = "invalid message"
	ErrTooManyHeaders  Error = "too many headers"
	ErrMessageTooLarge Error = "message too large"
)

// Error represents a SIP error.
// See [errorutil.Error].
type Error = errorutil.Error

// IsGrammarErr reports whether err is a header, URI or parameter grammar violation.
func IsGrammarErr(err error) bool { return errorutil.IsGrammarErr(err) }

// IsFramingErr reports whether err is a malformed start line, a missing line terminator or
// a truncated message.
func IsFramingErr(err error) bool { return errorutil.IsFramingErr(err) }

// IsSemanticErr reports whether err is caused by a missing mandatory header.
func IsSemanticErr(err error) bool { return errorutil.IsSemanticErr(err) }
