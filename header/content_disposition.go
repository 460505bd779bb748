package header

import (
	"io"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipmsg/internal/grammar"
	"github.com/ghettovoice/sipmsg/internal/ioutil"
	"github.com/ghettovoice/sipmsg/internal/scan"
	"github.com/ghettovoice/sipmsg/internal/util"
)

// ContentDisposition represents the Content-Disposition header field.
// The Content-Disposition header field describes how the message body or, for multipart messages,
// a message body part is to be interpreted by the UAC or UAS.
//
//	Content-Disposition = "Content-Disposition" HCOLON disp-type *( SEMI disp-param )
//	disp-param          = handling-param / generic-param
//	handling-param      = "handling" EQUAL ( "optional" / "required" / other-handling )
type ContentDisposition struct {
	Type     string `json:"type"`
	Handling string `json:"handling,omitempty"`
	Params   Params `json:"params,omitempty"`
}

var contentDispositionFields = grammar.Fields[ContentDisposition]{
	"handling": func(hdr *ContentDisposition, p Param) (err error) {
		hdr.Handling, err = tokenParam(p)
		return err
	},
}

func readContentDisposition(c *scan.Cursor) (Header, error) {
	typ, err := c.ReadToken()
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	hdr := &ContentDisposition{Type: typ}
	if hdr.Params, err = readHdrParams(c, hdr, contentDispositionFields); err != nil {
		return nil, errtrace.Wrap(err)
	}
	return hdr, nil
}

// CanonicName returns the canonical name of the header.
func (*ContentDisposition) CanonicName() Name { return "Content-Disposition" }

// CompactName returns the compact name of the header (Content-Disposition has no compact form).
func (*ContentDisposition) CompactName() Name { return "Content-Disposition" }

// RenderTo writes the header to the provided writer.
func (hdr *ContentDisposition) RenderTo(w io.Writer, opts *RenderOptions) (int, error) {
	if hdr == nil {
		return 0, nil
	}
	return errtrace.Wrap2(renderHdr(w, hdr, opts, hdr.renderValue))
}

func (hdr *ContentDisposition) renderValue(w io.Writer) (int, error) {
	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	cw.WriteString(hdr.Type)
	if hdr.Handling != "" {
		cw.WriteString(";handling=")
		cw.WriteString(hdr.Handling)
	}
	cw.Call(renderParams(hdr.Params))
	return errtrace.Wrap2(cw.Result())
}

// Render returns the string representation of the header.
func (hdr *ContentDisposition) Render(opts *RenderOptions) string {
	if hdr == nil {
		return ""
	}
	return renderHdrString(hdr, opts)
}

// RenderValue returns the header value without the name prefix.
func (hdr *ContentDisposition) RenderValue() string {
	if hdr == nil {
		return ""
	}
	return renderString(hdr.renderValue)
}

// String returns the string representation of the header value.
func (hdr *ContentDisposition) String() string { return hdr.RenderValue() }

// Clone returns a copy of the header.
func (hdr *ContentDisposition) Clone() Header {
	if hdr == nil {
		return nil
	}
	hdr2 := *hdr
	hdr2.Params = hdr.Params.Clone()
	return &hdr2
}

// Equal compares this header with another for equality.
func (hdr *ContentDisposition) Equal(val any) bool {
	other, ok := castHdr[ContentDisposition](val)
	if !ok {
		return false
	}
	if hdr == other {
		return true
	} else if hdr == nil || other == nil {
		return false
	}
	return util.EqFold(hdr.Type, other.Type) &&
		util.EqFold(hdr.Handling, other.Handling) &&
		hdr.Params.Equal(other.Params)
}

// IsValid checks whether the header is syntactically valid.
func (hdr *ContentDisposition) IsValid() bool {
	return hdr != nil && scan.IsToken(hdr.Type) && (hdr.Handling == "" || scan.IsToken(hdr.Handling))
}

// IsRequired reports whether the handling is absent or "required".
func (hdr *ContentDisposition) IsRequired() bool {
	return hdr != nil && (hdr.Handling == "" || util.EqFold(hdr.Handling, "required"))
}
