package header

import (
	"io"
	"slices"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipmsg/internal/grammar"
	"github.com/ghettovoice/sipmsg/internal/ioutil"
	"github.com/ghettovoice/sipmsg/internal/scan"
)

// Accept represents the Accept header field.
// The Accept header field lists the media types acceptable in the message body of the response.
//
//	Accept       = "Accept" HCOLON [ accept-range *(COMMA accept-range) ]
//	accept-range = media-range *(SEMI accept-param)
type Accept []MIMERange

// MIMERange is a single media range of the Accept header.
// The q parameter is promoted, other parameters are kept in MIMEType.Params.
type MIMERange struct {
	MIMEType
	Q    Q    `json:"q,omitzero"`
	HasQ bool `json:"has_q,omitempty"`
}

var mimeRangeFields = grammar.Fields[MIMERange]{
	"q": func(mr *MIMERange, p Param) (err error) {
		if mr.Q, err = qParam(p); err != nil {
			return err
		}
		mr.HasQ = true
		return nil
	},
}

func readAccept(c *scan.Cursor) (Header, error) {
	hdr := Accept{}
	if c.AtEOL() {
		return hdr, nil
	}
	err := grammar.ReadCommaList(c, func(c *scan.Cursor) error {
		var mr MIMERange
		var err error
		if mr.MIMEType, err = readMediaType(c); err != nil {
			return errtrace.Wrap(err)
		}
		if mr.Params, err = readHdrParams(c, &mr, mimeRangeFields); err != nil {
			return errtrace.Wrap(err)
		}
		hdr = append(hdr, mr)
		return nil
	})
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return hdr, nil
}

func (mr MIMERange) renderTo(w io.Writer) (int, error) {
	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	cw.Call(mr.MIMEType.renderTo)
	if mr.HasQ {
		cw.WriteString(";q=")
		cw.WriteString(mr.Q.String())
	}
	return errtrace.Wrap2(cw.Result())
}

// String returns the string representation of the media range.
func (mr MIMERange) String() string { return renderString(mr.renderTo) }

// Equal compares media ranges.
func (mr MIMERange) Equal(val any) bool {
	other, ok := castHdr[MIMERange](val)
	if !ok || other == nil {
		return false
	}
	return mr.MIMEType.Equal(other.MIMEType) && mr.HasQ == other.HasQ && mr.Q.Equal(other.Q)
}

// Weight returns the q value in thousandths, absent q means 1.
func (mr MIMERange) Weight() int {
	if !mr.HasQ {
		return 1000
	}
	return mr.Q.Milli()
}

// CanonicName returns the canonical name of the header.
func (Accept) CanonicName() Name { return "Accept" }

// CompactName returns the compact name of the header (Accept has no compact form).
func (Accept) CompactName() Name { return "Accept" }

// RenderTo writes the header to the provided writer.
func (hdr Accept) RenderTo(w io.Writer, opts *RenderOptions) (int, error) {
	return errtrace.Wrap2(renderHdr(w, hdr, opts, hdr.renderValue))
}

func (hdr Accept) renderValue(w io.Writer) (int, error) {
	return errtrace.Wrap2(renderList(w, hdr, func(w io.Writer, mr MIMERange) (int, error) { return mr.renderTo(w) }))
}

// Render returns the string representation of the header.
func (hdr Accept) Render(opts *RenderOptions) string { return renderHdrString(hdr, opts) }

// RenderValue returns the header value without the name prefix.
func (hdr Accept) RenderValue() string { return renderString(hdr.renderValue) }

// String returns the string representation of the header value.
func (hdr Accept) String() string { return hdr.RenderValue() }

// Clone returns a copy of the header.
func (hdr Accept) Clone() Header {
	if hdr == nil {
		return Accept(nil)
	}
	hdr2 := make(Accept, len(hdr))
	for i := range hdr {
		hdr2[i] = MIMERange{MIMEType: hdr[i].MIMEType.Clone(), Q: hdr[i].Q, HasQ: hdr[i].HasQ}
	}
	return hdr2
}

// Equal compares this header with another for equality.
func (hdr Accept) Equal(val any) bool {
	other, ok := castHdr[Accept](val)
	if !ok || other == nil {
		return false
	}
	return slices.EqualFunc(hdr, *other, func(mr1, mr2 MIMERange) bool { return mr1.Equal(mr2) })
}

// IsValid checks whether the header is syntactically valid.
func (hdr Accept) IsValid() bool {
	return !slices.ContainsFunc(hdr, func(mr MIMERange) bool {
		return !mr.MIMEType.IsValid() || (mr.HasQ && !mr.Q.IsValid())
	})
}

// Accepts reports whether the media type is covered by any of the ranges with non-zero weight.
// An empty header accepts nothing.
func (hdr Accept) Accepts(mt MIMEType) bool {
	return slices.ContainsFunc(hdr, func(mr MIMERange) bool { return mr.Weight() > 0 && mt.Matches(mr.MIMEType) })
}
