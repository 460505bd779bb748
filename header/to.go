package header

import (
	"io"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipmsg/internal/grammar"
	"github.com/ghettovoice/sipmsg/internal/scan"
)

// To represents the To header field.
// The To header field specifies the logical recipient of the request.
//
//	To = ( "To" / "t" ) HCOLON to-spec
//	to-spec = ( name-addr / addr-spec ) *( SEMI to-param )
type To struct {
	NameAddr
	Tag    string `json:"tag,omitempty"`
	Params Params `json:"params,omitempty"`
}

var toFields = grammar.Fields[To]{
	"tag": func(hdr *To, p Param) (err error) {
		hdr.Tag, err = tokenParam(p)
		return err
	},
}

func readTo(c *scan.Cursor) (Header, error) {
	hdr := new(To)
	var err error
	if hdr.NameAddr, err = readNameAddr(c); err != nil {
		return nil, errtrace.Wrap(err)
	}
	if hdr.Params, err = readHdrParams(c, hdr, toFields); err != nil {
		return nil, errtrace.Wrap(err)
	}
	return hdr, nil
}

// CanonicName returns the canonical name of the header.
func (*To) CanonicName() Name { return "To" }

// CompactName returns the compact name of the header.
func (*To) CompactName() Name { return "t" }

// RenderTo writes the header to the provided writer.
func (hdr *To) RenderTo(w io.Writer, opts *RenderOptions) (int, error) {
	if hdr == nil {
		return 0, nil
	}
	return errtrace.Wrap2(renderHdr(w, hdr, opts, hdr.renderValue))
}

func (hdr *To) renderValue(w io.Writer) (int, error) {
	return errtrace.Wrap2(renderTagged(w, hdr.NameAddr, hdr.Tag, hdr.Params))
}

// Render returns the string representation of the header.
func (hdr *To) Render(opts *RenderOptions) string {
	if hdr == nil {
		return ""
	}
	return renderHdrString(hdr, opts)
}

// RenderValue returns the header value without the name prefix.
func (hdr *To) RenderValue() string {
	if hdr == nil {
		return ""
	}
	return renderString(hdr.renderValue)
}

// String returns the string representation of the header value.
func (hdr *To) String() string { return hdr.RenderValue() }

// Clone returns a copy of the header.
func (hdr *To) Clone() Header {
	if hdr == nil {
		return nil
	}
	return &To{NameAddr: hdr.NameAddr.Clone(), Tag: hdr.Tag, Params: hdr.Params.Clone()}
}

// Equal compares this header with another for equality.
// Tags are compared case-sensitively.
func (hdr *To) Equal(val any) bool {
	other, ok := castHdr[To](val)
	if !ok {
		return false
	}
	if hdr == other {
		return true
	} else if hdr == nil || other == nil {
		return false
	}
	return hdr.NameAddr.Equal(other.NameAddr) && hdr.Tag == other.Tag && hdr.Params.Equal(other.Params)
}

// IsValid checks whether the header is syntactically valid.
func (hdr *To) IsValid() bool {
	return hdr != nil && hdr.NameAddr.IsValid() && (hdr.Tag == "" || scan.IsToken(hdr.Tag))
}

// HasTag reports whether the header has a non-empty tag.
func (hdr *To) HasTag() bool { return hdr != nil && hdr.Tag != "" }
