package header

//go:generate go tool errtrace -w .

import (
	"io"
	"net/textproto"
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipmsg/internal/ioutil"
	"github.com/ghettovoice/sipmsg/internal/scan"
	"github.com/ghettovoice/sipmsg/internal/types"
	"github.com/ghettovoice/sipmsg/internal/util"
)

// ProtoInfo represents SIP protocol information (name and version).
type ProtoInfo = types.ProtoInfo

// TransportProto represents a transport protocol (UDP, TCP, TLS, SCTP, WS, WSS).
type TransportProto = types.TransportProto

// RequestMethod represents a SIP request method (INVITE, ACK, BYE, etc.).
type RequestMethod = types.RequestMethod

// RenderOptions contains options for rendering headers.
type RenderOptions = types.RenderOptions

// Params is an ordered list of generic header parameters.
type Params = types.Params

// Param is a single generic header parameter.
type Param = types.Param

// Q is a quality value of Contact, Accept-Encoding and Accept-Language entries.
type Q = types.Q

// ParseError describes a header parse failure.
type ParseError = scan.Error

// Header represents a generic SIP header.
type Header interface {
	types.Renderer
	CanonicName() Name
	CompactName() Name
	// RenderValue returns the header value without the name prefix.
	RenderValue() string
	String() string
	Clone() Header
	Equal(val any) bool
	IsValid() bool
}

// Name represents a SIP header name.
type Name string

// ToCanonic converts the Name to its canonical form.
func (n Name) ToCanonic() Name { return CanonicName(n) }

// IsValid checks whether the Name is syntactically valid.
func (n Name) IsValid() bool { return scan.IsToken(string(n)) }

// Equal compares this Name with another for equality.
func (n Name) Equal(val any) bool {
	var other Name
	switch v := val.(type) {
	case Name:
		other = v
	case *Name:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}
	return CanonicName(n) == CanonicName(other)
}

var hdrNames = map[string]Name{
	"c":                "Content-Type",
	"e":                "Content-Encoding",
	"f":                "From",
	"i":                "Call-ID",
	"k":                "Supported",
	"l":                "Content-Length",
	"m":                "Contact",
	"s":                "Subject",
	"t":                "To",
	"v":                "Via",
	"Call-Id":          "Call-ID",
	"Cseq":             "CSeq",
	"Mime-Version":     "MIME-Version",
	"Www-Authenticate": "WWW-Authenticate",
}

// CanonicName converts name to the canonical form.
// The canonicalization converts the first letter and any letter following a hyphen to upper case;
// the rest are converted to lowercase. For example, the canonical name for "accept-encoding" is "Accept-Encoding".
// Also, any compact name is converted to its full canonical form. For example, "c" converts to "Content-Type".
func CanonicName[T ~string](name T) Name {
	s := strings.TrimSpace(string(name))
	if n, ok := hdrNames[strings.ToLower(s)]; ok && len(s) == 1 {
		return n
	}
	s = textproto.CanonicalMIMEHeaderKey(s)
	if n, ok := hdrNames[s]; ok {
		return n
	}
	return Name(s)
}

func hdrName(hdr Header, opts *RenderOptions) Name {
	if opts != nil && opts.Compact {
		return hdr.CompactName()
	}
	return hdr.CanonicName()
}

// renderHdr writes "Name: value".
func renderHdr(w io.Writer, hdr Header, opts *RenderOptions, value func(io.Writer) (int, error)) (int, error) {
	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	cw.WriteString(string(hdrName(hdr, opts)))
	cw.WriteString(": ")
	cw.Call(value)
	return errtrace.Wrap2(cw.Result())
}

func renderString(fn func(io.Writer) (int, error)) string {
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	fn(sb) //nolint:errcheck
	return sb.String()
}

func renderHdrString(hdr Header, opts *RenderOptions) string {
	return renderString(func(w io.Writer) (int, error) { return hdr.RenderTo(w, opts) })
}

// renderList writes list entries separated by ", ".
func renderList[E any](w io.Writer, list []E, render func(io.Writer, E) (int, error)) (int, error) {
	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	for i := range list {
		if i > 0 {
			cw.WriteString(", ")
		}
		cw.Call(func(w io.Writer) (int, error) { return render(w, list[i]) })
	}
	return errtrace.Wrap2(cw.Result())
}

func renderParams(ps Params) func(io.Writer) (int, error) {
	return func(w io.Writer) (int, error) { return ps.RenderTo(w, ';') }
}

func writeString[S ~string](w io.Writer, s S) (int, error) {
	return errtrace.Wrap2(io.WriteString(w, string(s)))
}

// castHdr converts val to *T when val is either T or *T.
func castHdr[T any](val any) (*T, bool) {
	switch v := val.(type) {
	case T:
		return &v, true
	case *T:
		return v, true
	default:
		return nil, false
	}
}

func eqList[E any](a, b []E, eq func(a, b E) bool) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !eq(a[i], b[i]) {
			return false
		}
	}
	return true
}

func eqFoldList[S ~string](a, b []S) bool {
	return eqList(a, b, func(a, b S) bool { return util.EqFold(a, b) })
}

func isTokenList[S ~string](list []S) bool {
	for _, s := range list {
		if !scan.IsToken(string(s)) {
			return false
		}
	}
	return true
}
