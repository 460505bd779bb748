package header

import (
	"io"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipmsg/internal/scan"
)

// AcceptEncoding represents the Accept-Encoding header field.
// The Accept-Encoding header field restricts the content-codings that are acceptable in the response.
//
//	Accept-Encoding = "Accept-Encoding" HCOLON [ encoding *(COMMA encoding) ]
//	encoding        = codings *(SEMI accept-param)
type AcceptEncoding []Weighted

func readAcceptEncoding(c *scan.Cursor) (Header, error) {
	list, err := readWeightedList(c)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return AcceptEncoding(list), nil
}

// CanonicName returns the canonical name of the header.
func (AcceptEncoding) CanonicName() Name { return "Accept-Encoding" }

// CompactName returns the compact name of the header (Accept-Encoding has no compact form).
func (AcceptEncoding) CompactName() Name { return "Accept-Encoding" }

// RenderTo writes the header to the provided writer.
func (hdr AcceptEncoding) RenderTo(w io.Writer, opts *RenderOptions) (int, error) {
	return errtrace.Wrap2(renderHdr(w, hdr, opts, hdr.renderValue))
}

func (hdr AcceptEncoding) renderValue(w io.Writer) (int, error) {
	return errtrace.Wrap2(renderWeightedList(w, hdr))
}

// Render returns the string representation of the header.
func (hdr AcceptEncoding) Render(opts *RenderOptions) string {
	return renderHdrString(hdr, opts)
}

// RenderValue returns the header value without the name prefix.
func (hdr AcceptEncoding) RenderValue() string { return renderString(hdr.renderValue) }

// String returns the string representation of the header value.
func (hdr AcceptEncoding) String() string { return hdr.RenderValue() }

// Clone returns a copy of the header.
func (hdr AcceptEncoding) Clone() Header { return AcceptEncoding(cloneWeightedList(hdr)) }

// Equal compares this header with another for equality.
func (hdr AcceptEncoding) Equal(val any) bool {
	other, ok := castHdr[AcceptEncoding](val)
	return ok && other != nil && eqWeightedList(hdr, *other)
}

// IsValid checks whether the header is syntactically valid.
func (hdr AcceptEncoding) IsValid() bool { return isValidWeightedList(hdr) }
