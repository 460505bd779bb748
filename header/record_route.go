package header

import (
	"io"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipmsg/internal/scan"
)

// RecordRoute represents a single value of the Record-Route header field.
// The Record-Route header field is inserted by proxies that want to stay on the path of subsequent requests.
// Each comma-separated value of the header line is parsed into a separate RecordRoute.
//
//	Record-Route = "Record-Route" HCOLON rec-route *(COMMA rec-route)
//	rec-route    = name-addr *( SEMI rr-param )
type RecordRoute struct {
	NameAddr
	Params Params `json:"params,omitempty"`
}

func readRecordRoute(c *scan.Cursor) (Header, error) {
	hdr := new(RecordRoute)
	var err error
	if hdr.NameAddr, err = readRouteAddr(c); err != nil {
		return nil, errtrace.Wrap(err)
	}
	if hdr.Params, err = readHdrParams[RecordRoute](c, hdr, nil); err != nil {
		return nil, errtrace.Wrap(err)
	}
	return hdr, nil
}

// CanonicName returns the canonical name of the header.
func (*RecordRoute) CanonicName() Name { return "Record-Route" }

// CompactName returns the compact name of the header (Record-Route has no compact form).
func (*RecordRoute) CompactName() Name { return "Record-Route" }

// RenderTo writes the header to the provided writer.
func (hdr *RecordRoute) RenderTo(w io.Writer, opts *RenderOptions) (int, error) {
	if hdr == nil {
		return 0, nil
	}
	return errtrace.Wrap2(renderHdr(w, hdr, opts, hdr.renderValue))
}

func (hdr *RecordRoute) renderValue(w io.Writer) (int, error) {
	na := hdr.NameAddr
	na.Angled = true
	return errtrace.Wrap2(renderAddr(w, na, hdr.Params))
}

// Render returns the string representation of the header.
func (hdr *RecordRoute) Render(opts *RenderOptions) string {
	if hdr == nil {
		return ""
	}
	return renderHdrString(hdr, opts)
}

// RenderValue returns the header value without the name prefix.
func (hdr *RecordRoute) RenderValue() string {
	if hdr == nil {
		return ""
	}
	return renderString(hdr.renderValue)
}

// String returns the string representation of the header value.
func (hdr *RecordRoute) String() string { return hdr.RenderValue() }

// Clone returns a copy of the header.
func (hdr *RecordRoute) Clone() Header {
	if hdr == nil {
		return nil
	}
	return &RecordRoute{NameAddr: hdr.NameAddr.Clone(), Params: hdr.Params.Clone()}
}

// Equal compares this header with another for equality.
func (hdr *RecordRoute) Equal(val any) bool {
	other, ok := castHdr[RecordRoute](val)
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
func (hdr *RecordRoute) IsValid() bool { return hdr != nil && hdr.NameAddr.IsValid() }

// IsLoose reports whether the route URI carries the lr parameter.
func (hdr *RecordRoute) IsLoose() bool { return hdr != nil && hdr.URI != nil && hdr.URI.LR }
