package header

import (
	"io"
	"slices"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipmsg/internal/grammar"
	"github.com/ghettovoice/sipmsg/internal/scan"
)

// ContentEncoding represents the Content-Encoding header field.
// The Content-Encoding header field indicates what additional content codings have been applied to the message body.
type ContentEncoding []string

func readContentEncoding(c *scan.Cursor) (Header, error) {
	toks, err := grammar.ReadTokenList(c)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return ContentEncoding(toks), nil
}

// CanonicName returns the canonical name of the header.
func (ContentEncoding) CanonicName() Name { return "Content-Encoding" }

// CompactName returns the compact name of the header.
func (ContentEncoding) CompactName() Name { return "e" }

// RenderTo writes the header to the provided writer.
func (hdr ContentEncoding) RenderTo(w io.Writer, opts *RenderOptions) (int, error) {
	return errtrace.Wrap2(renderHdr(w, hdr, opts, hdr.renderValue))
}

func (hdr ContentEncoding) renderValue(w io.Writer) (int, error) {
	return errtrace.Wrap2(renderList(w, hdr, writeString[string]))
}

// Render returns the string representation of the header.
func (hdr ContentEncoding) Render(opts *RenderOptions) string {
	return renderHdrString(hdr, opts)
}

// RenderValue returns the header value without the name prefix.
func (hdr ContentEncoding) RenderValue() string { return renderString(hdr.renderValue) }

// String returns the string representation of the header value.
func (hdr ContentEncoding) String() string { return hdr.RenderValue() }

// Clone returns a copy of the header.
func (hdr ContentEncoding) Clone() Header { return slices.Clone(hdr) }

// Equal compares this header with another for equality.
// Entries are compared case-insensitively.
func (hdr ContentEncoding) Equal(val any) bool {
	other, ok := castHdr[ContentEncoding](val)
	return ok && other != nil && eqFoldList(hdr, *other)
}

// IsValid checks whether the header is syntactically valid.
func (hdr ContentEncoding) IsValid() bool { return isTokenList(hdr) }
