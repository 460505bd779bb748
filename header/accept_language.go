package header

import (
	"io"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipmsg/internal/scan"
)

// AcceptLanguage represents the Accept-Language header field.
// The Accept-Language header field indicates the preferred languages for reason phrases, session descriptions or status responses.
//
//	Accept-Language = "Accept-Language" HCOLON [ language *(COMMA language) ]
//	language = language-range *(SEMI accept-param)
type AcceptLanguage []Weighted

func readAcceptLanguage(c *scan.Cursor) (Header, error) {
	list, err := readWeightedList(c)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return AcceptLanguage(list), nil
}

// CanonicName returns the canonical name of the header.
func (AcceptLanguage) CanonicName() Name { return "Accept-Language" }

// CompactName returns the compact name of the header (Accept-Language has no compact form).
func (AcceptLanguage) CompactName() Name { return "Accept-Language" }

// RenderTo writes the header to the provided writer.
func (hdr AcceptLanguage) RenderTo(w io.Writer, opts *RenderOptions) (int, error) {
	return errtrace.Wrap2(renderHdr(w, hdr, opts, hdr.renderValue))
}

func (hdr AcceptLanguage) renderValue(w io.Writer) (int, error) {
	return errtrace.Wrap2(renderWeightedList(w, hdr))
}

// Render returns the string representation of the header.
func (hdr AcceptLanguage) Render(opts *RenderOptions) string {
	return renderHdrString(hdr, opts)
}

// RenderValue returns the header value without the name prefix.
func (hdr AcceptLanguage) RenderValue() string { return renderString(hdr.renderValue) }

// String returns the string representation of the header value.
func (hdr AcceptLanguage) String() string { return hdr.RenderValue() }

// Clone returns a copy of the header.
func (hdr AcceptLanguage) Clone() Header { return AcceptLanguage(cloneWeightedList(hdr)) }

// Equal compares this header with another for equality.
func (hdr AcceptLanguage) Equal(val any) bool {
	other, ok := castHdr[AcceptLanguage](val)
	return ok && other != nil && eqWeightedList(hdr, *other)
}

// IsValid checks whether the header is syntactically valid.
func (hdr AcceptLanguage) IsValid() bool { return isValidWeightedList(hdr) }
