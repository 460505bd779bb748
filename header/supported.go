package header

import (
	"io"
	"slices"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipmsg/internal/grammar"
	"github.com/ghettovoice/sipmsg/internal/scan"
	"github.com/ghettovoice/sipmsg/internal/util"
)

// Supported represents the Supported header field.
// The Supported header field enumerates all the extensions supported by the UAC or UAS.
type Supported []string

func readSupported(c *scan.Cursor) (Header, error) {
	toks, err := grammar.ReadTokenList(c)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return Supported(toks), nil
}

// CanonicName returns the canonical name of the header.
func (Supported) CanonicName() Name { return "Supported" }

// CompactName returns the compact name of the header.
func (Supported) CompactName() Name { return "k" }

// RenderTo writes the header to the provided writer.
func (hdr Supported) RenderTo(w io.Writer, opts *RenderOptions) (int, error) {
	return errtrace.Wrap2(renderHdr(w, hdr, opts, hdr.renderValue))
}

func (hdr Supported) renderValue(w io.Writer) (int, error) {
	return errtrace.Wrap2(renderList(w, hdr, writeString[string]))
}

// Render returns the string representation of the header.
func (hdr Supported) Render(opts *RenderOptions) string { return renderHdrString(hdr, opts) }

// RenderValue returns the header value without the name prefix.
func (hdr Supported) RenderValue() string { return renderString(hdr.renderValue) }

// String returns the string representation of the header value.
func (hdr Supported) String() string { return hdr.RenderValue() }

// Clone returns a copy of the header.
func (hdr Supported) Clone() Header { return slices.Clone(hdr) }

// Equal compares this header with another for equality.
// Entries are compared case-insensitively.
func (hdr Supported) Equal(val any) bool {
	other, ok := castHdr[Supported](val)
	return ok && other != nil && eqFoldList(hdr, *other)
}

// IsValid checks whether the header is syntactically valid.
func (hdr Supported) IsValid() bool { return isTokenList(hdr) }

// Has reports whether the option tag is listed.
func (hdr Supported) Has(tag string) bool {
	return slices.ContainsFunc(hdr, func(s string) bool { return util.EqFold(s, tag) })
}
