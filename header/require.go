package header

import (
	"io"
	"slices"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipmsg/internal/grammar"
	"github.com/ghettovoice/sipmsg/internal/scan"
	"github.com/ghettovoice/sipmsg/internal/util"
)

// Require represents the Require header field.
// The Require header field is used by UACs to tell UASs about options that the UAC expects the UAS to support.
type Require []string

func readRequire(c *scan.Cursor) (Header, error) {
	toks, err := grammar.ReadTokenList(c)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return Require(toks), nil
}

// CanonicName returns the canonical name of the header.
func (Require) CanonicName() Name { return "Require" }

// CompactName returns the compact name of the header (Require has no compact form).
func (Require) CompactName() Name { return "Require" }

// RenderTo writes the header to the provided writer.
func (hdr Require) RenderTo(w io.Writer, opts *RenderOptions) (int, error) {
	return errtrace.Wrap2(renderHdr(w, hdr, opts, hdr.renderValue))
}

func (hdr Require) renderValue(w io.Writer) (int, error) {
	return errtrace.Wrap2(renderList(w, hdr, writeString[string]))
}

// Render returns the string representation of the header.
func (hdr Require) Render(opts *RenderOptions) string { return renderHdrString(hdr, opts) }

// RenderValue returns the header value without the name prefix.
func (hdr Require) RenderValue() string { return renderString(hdr.renderValue) }

// String returns the string representation of the header value.
func (hdr Require) String() string { return hdr.RenderValue() }

// Clone returns a copy of the header.
func (hdr Require) Clone() Header { return slices.Clone(hdr) }

// Equal compares this header with another for equality.
// Entries are compared case-insensitively.
func (hdr Require) Equal(val any) bool {
	other, ok := castHdr[Require](val)
	return ok && other != nil && eqFoldList(hdr, *other)
}

// IsValid checks whether the header is syntactically valid.
func (hdr Require) IsValid() bool { return isTokenList(hdr) }

// Has reports whether the option tag is listed.
func (hdr Require) Has(tag string) bool {
	return slices.ContainsFunc(hdr, func(s string) bool { return util.EqFold(s, tag) })
}
