package header

import (
	"io"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipmsg/internal/scan"
)

// Route represents a single value of the Route header field.
// The Route header field is used to force routing for a request through the listed set of proxies.
// Each comma-separated value of the header line is parsed into a separate Route.
//
//	Route       = "Route" HCOLON route-param *(COMMA route-param)
//	route-param = name-addr *( SEMI rr-param )
type Route struct {
	NameAddr
	Params Params `json:"params,omitempty"`
}

// readRouteAddr reads name-addr of Route and Record-Route, the angle brackets are mandatory.
func readRouteAddr(c *scan.Cursor) (NameAddr, error) {
	m := c.Mark()
	na, err := readNameAddr(c)
	if err != nil {
		return na, errtrace.Wrap(err)
	}
	if !na.Angled {
		c.Rewind(m)
		return na, errtrace.Wrap(c.Unexpected("'<'"))
	}
	return na, nil
}

func readRoute(c *scan.Cursor) (Header, error) {
	hdr := new(Route)
	var err error
	if hdr.NameAddr, err = readRouteAddr(c); err != nil {
		return nil, errtrace.Wrap(err)
	}
	if hdr.Params, err = readHdrParams[Route](c, hdr, nil); err != nil {
		return nil, errtrace.Wrap(err)
	}
	return hdr, nil
}

// CanonicName returns the canonical name of the header.
func (*Route) CanonicName() Name { return "Route" }

// CompactName returns the compact name of the header (Route has no compact form).
func (*Route) CompactName() Name { return "Route" }

// RenderTo writes the header to the provided writer.
func (hdr *Route) RenderTo(w io.Writer, opts *RenderOptions) (int, error) {
	if hdr == nil {
		return 0, nil
	}
	return errtrace.Wrap2(renderHdr(w, hdr, opts, hdr.renderValue))
}

func (hdr *Route) renderValue(w io.Writer) (int, error) {
	na := hdr.NameAddr
	na.Angled = true
	return errtrace.Wrap2(renderAddr(w, na, hdr.Params))
}

// Render returns the string representation of the header.
func (hdr *Route) Render(opts *RenderOptions) string {
	if hdr == nil {
		return ""
	}
	return renderHdrString(hdr, opts)
}

// RenderValue returns the header value without the name prefix.
func (hdr *Route) RenderValue() string {
	if hdr == nil {
		return ""
	}
	return renderString(hdr.renderValue)
}

// String returns the string representation of the header value.
func (hdr *Route) String() string { return hdr.RenderValue() }

// Clone returns a copy of the header.
func (hdr *Route) Clone() Header {
	if hdr == nil {
		return nil
	}
	return &Route{NameAddr: hdr.NameAddr.Clone(), Params: hdr.Params.Clone()}
}

// Equal compares this header with another for equality.
func (hdr *Route) Equal(val any) bool {
	other, ok := castHdr[Route](val)
	if !ok {
		return false
	}
	if hdr == other {
		return true
	} else if hdr == nil || other == nil {
		return false
	}
	return hdr.NameAddr.Equal(other.NameAddr) && hdr.Params.Equal(other.Params)
}

// IsValid checks whether the header is syntactically valid.
func (hdr *Route) IsValid() bool { return hdr != nil && hdr.NameAddr.IsValid() }

// IsLoose reports whether the route URI carries the lr parameter.
func (hdr *Route) IsLoose() bool { return hdr != nil && hdr.URI != nil && hdr.URI.LR }
