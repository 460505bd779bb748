package header

import (
	"io"
	"slices"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipmsg/internal/grammar"
	"github.com/ghettovoice/sipmsg/internal/scan"
)

// ContentLanguage represents the Content-Language header field.
// The Content-Language header field lists the languages of the message body.
type ContentLanguage []string

func readContentLanguage(c *scan.Cursor) (Header, error) {
	toks, err := grammar.ReadTokenList(c)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return ContentLanguage(toks), nil
}

// CanonicName returns the canonical name of the header.
func (ContentLanguage) CanonicName() Name { return "Content-Language" }

// CompactName returns the compact name of the header (Content-Language has no compact form).
func (ContentLanguage) CompactName() Name { return "Content-Language" }

// RenderTo writes the header to the provided writer.
func (hdr ContentLanguage) RenderTo(w io.Writer, opts *RenderOptions) (int, error) {
	return errtrace.Wrap2(renderHdr(w, hdr, opts, hdr.renderValue))
}

func (hdr ContentLanguage) renderValue(w io.Writer) (int, error) {
	return errtrace.Wrap2(renderList(w, hdr, writeString[string]))
}

// Render returns the string representation of the header.
func (hdr ContentLanguage) Render(opts *RenderOptions) string {
	return renderHdrString(hdr, opts)
}

// RenderValue returns the header value without the name prefix.
func (hdr ContentLanguage) RenderValue() string { return renderString(hdr.renderValue) }

// String returns the string representation of the header value.
func (hdr ContentLanguage) String() string { return hdr.RenderValue() }

// Clone returns a copy of the header.
func (hdr ContentLanguage) Clone() Header { return slices.Clone(hdr) }

// Equal compares this header with another for equality.
// Entries are compared case-insensitively.
func (hdr ContentLanguage) Equal(val any) bool {
	other, ok := castHdr[ContentLanguage](val)
	return ok && other != nil && eqFoldList(hdr, *other)
}

// IsValid checks whether the header is syntactically valid.
func (hdr ContentLanguage) IsValid() bool { return isTokenList(hdr) }
