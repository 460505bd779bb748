package header

import (
	"io"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipmsg/internal/grammar"
	"github.com/ghettovoice/sipmsg/internal/ioutil"
	"github.com/ghettovoice/sipmsg/internal/scan"
)

// From represents the From header field.
// The From header field indicates the initiator of the request.
//
//	From = ( "From" / "f" ) HCOLON from-spec
//	from-spec = ( name-addr / addr-spec ) *( SEMI from-param )
type From struct {
	NameAddr
	Tag    string `json:"tag,omitempty"`
	Params Params `json:"params,omitempty"`
}

var fromFields = grammar.Fields[From]{
	"tag": func(hdr *From, p Param) (err error) {
		hdr.Tag, err = tokenParam(p)
		return err
	},
}

func readFrom(c *scan.Cursor) (Header, error) {
	hdr := new(From)
	var err error
	if hdr.NameAddr, err = readNameAddr(c); err != nil {
		return nil, errtrace.Wrap(err)
	}
	if hdr.Params, err = readHdrParams(c, hdr, fromFields); err != nil {
		return nil, errtrace.Wrap(err)
	}
	return hdr, nil
}

// CanonicName returns the canonical name of the header.
func (*From) CanonicName() Name { return "From" }

// CompactName returns the compact name of the header.
func (*From) CompactName() Name { return "f" }

// RenderTo writes the header to the provided writer.
func (hdr *From) RenderTo(w io.Writer, opts *RenderOptions) (int, error) {
	if hdr == nil {
		return 0, nil
	}
	return errtrace.Wrap2(renderHdr(w, hdr, opts, hdr.renderValue))
}

func (hdr *From) renderValue(w io.Writer) (int, error) {
	return errtrace.Wrap2(renderTagged(w, hdr.NameAddr, hdr.Tag, hdr.Params))
}

// renderTagged writes name-addr followed by the tag and generic parameters.
func renderTagged(w io.Writer, na NameAddr, tag string, ps Params) (int, error) {
	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	cw.Call(na.renderTo)
	if tag != "" {
		cw.WriteString(";tag=")
		cw.WriteString(tag)
	}
	cw.Call(renderParams(ps))
	return errtrace.Wrap2(cw.Result())
}

// Render returns the string representation of the header.
func (hdr *From) Render(opts *RenderOptions) string {
	if hdr == nil {
		return ""
	}
	return renderHdrString(hdr, opts)
}

// RenderValue returns the header value without the name prefix.
func (hdr *From) RenderValue() string {
	if hdr == nil {
		return ""
	}
	return renderString(hdr.renderValue)
}

// String returns the string representation of the header value.
func (hdr *From) String() string { return hdr.RenderValue() }

// Clone returns a copy of the header.
func (hdr *From) Clone() Header {
	if hdr == nil {
		return nil
	}
	return &From{NameAddr: hdr.NameAddr.Clone(), Tag: hdr.Tag, Params: hdr.Params.Clone()}
}

// Equal compares this header with another for equality.
// Tags are compared case-sensitively.
func (hdr *From) Equal(val any) bool {
	other, ok := castHdr[From](val)
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
func (hdr *From) IsValid() bool {
	return hdr != nil && hdr.NameAddr.IsValid() && (hdr.Tag == "" || scan.IsToken(hdr.Tag))
}

// HasTag reports whether the header has a non-empty tag.
func (hdr *From) HasTag() bool { return hdr != nil && hdr.Tag != "" }
