package uri

//go:generate go tool errtrace -w .

import (
	"braces.dev/errtrace"

	"github.com/ghettovoice/sipmsg/internal/scan"
	"github.com/ghettovoice/sipmsg/internal/types"
	"github.com/ghettovoice/sipmsg/internal/util"
)

// RenderOptions contains options for rendering URIs.
type RenderOptions = types.RenderOptions

// TransportProto represents a transport protocol (UDP, TCP, TLS, SCTP, WS, WSS).
type TransportProto = types.TransportProto

// RequestMethod represents a SIP request method.
type RequestMethod = types.RequestMethod

// Params is an ordered list of URI parameters.
type Params = types.Params

// Param is a single URI parameter.
type Param = types.Param

// ParseError describes a URI parse failure.
type ParseError = scan.Error

// ErrUnsupportedScheme is returned when a SIP URI was expected but the scheme is neither sip nor sips.
const ErrUnsupportedScheme = scan.ErrUnsupportedScheme

// URI represents a generic URI (SIP, SIPS or any other absolute URI).
type URI interface {
	types.Renderer
	Clone() URI
	Equal(val any) bool
	IsValid() bool
	String() string
}

// GetScheme returns the scheme of the URI or an empty string for nil.
func GetScheme(u URI) string {
	switch u := u.(type) {
	case *SIP:
		return u.Scheme()
	case *Any:
		if u == nil {
			return ""
		}
		return u.Scheme
	default:
		return ""
	}
}

// Parse parses any absolute URI from the given input s (string or []byte).
//
// Parsing of sip and sips URIs returns [*SIP], any other scheme returns [*Any].
func Parse[T util.Byteseq](s T) (URI, error) {
	c := scan.NewCursor(string(s))
	u, err := ReadAbsolute(c)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	if !c.EOF() {
		return nil, errtrace.Wrap(c.Unexpected("end of URI"))
	}
	return u, nil
}

// ReadAbsolute reads an absolute URI.
// SIP and SIPS URIs are read with parameters and headers as [*SIP], other schemes as [*Any].
func ReadAbsolute(c *scan.Cursor) (URI, error) {
	m := c.Mark()
	scheme, err := readScheme(c)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	c.Rewind(m)

	if isSIPScheme(scheme) {
		u, err := Read(c)
		if err != nil {
			return nil, errtrace.Wrap(err)
		}
		return u, nil
	}
	u, err := ReadAny(c)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return u, nil
}

// scheme = ALPHA *( ALPHA / DIGIT / "+" / "-" / "." )
func readScheme(c *scan.Cursor) (string, error) {
	start := c.Offset()
	if b, ok := c.Peek(); !ok || !scan.Is(b, scan.Alpha) {
		return "", errtrace.Wrap(c.Unexpected("URI scheme"))
	}
	c.ReadWhileFunc(func(b byte) bool { return scan.Is(b, scan.Alnum) || b == '+' || b == '-' || b == '.' })
	scheme := c.Since(start)
	if err := c.Expect(':'); err != nil {
		return "", errtrace.Wrap(err)
	}
	return scheme, nil
}

func isSIPScheme(s string) bool { return util.EqFold(s, "sip") || util.EqFold(s, "sips") }

// Equal reports whether u1 and u2 are equal URIs.
func Equal(u1, u2 URI) bool {
	if u1 == nil || u2 == nil {
		return u1 == nil && u2 == nil
	}
	return u1.Equal(u2)
}

// Clone returns a deep copy of u or nil.
func Clone(u URI) URI {
	if u == nil {
		return nil
	}
	return u.Clone()
}
