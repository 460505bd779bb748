package header

import (
	"io"
	"slices"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipmsg/internal/grammar"
	"github.com/ghettovoice/sipmsg/internal/scan"
	"github.com/ghettovoice/sipmsg/internal/types"
)

// Allow represents the Allow header field.
// The Allow header field lists the set of methods supported by the UA generating the message.
//
//	Allow = "Allow" HCOLON [Method *(COMMA Method)]
type Allow []RequestMethod

func readAllow(c *scan.Cursor) (Header, error) {
	toks, err := grammar.ReadTokenList(c)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	hdr := make(Allow, len(toks))
	for i, tok := range toks {
		hdr[i] = types.ParseRequestMethod(tok)
	}
	return hdr, nil
}

// CanonicName returns the canonical name of the header.
func (Allow) CanonicName() Name { return "Allow" }

// CompactName returns the compact name of the header (Allow has no compact form).
func (Allow) CompactName() Name { return "Allow" }

// RenderTo writes the header to the provided writer.
func (hdr Allow) RenderTo(w io.Writer, opts *RenderOptions) (int, error) {
	return errtrace.Wrap2(renderHdr(w, hdr, opts, hdr.renderValue))
}

func (hdr Allow) renderValue(w io.Writer) (int, error) {
	return errtrace.Wrap2(renderList(w, hdr, writeString[RequestMethod]))
}

// Render returns the string representation of the header.
func (hdr Allow) Render(opts *RenderOptions) string { return renderHdrString(hdr, opts) }

// RenderValue returns the header value without the name prefix.
func (hdr Allow) RenderValue() string { return renderString(hdr.renderValue) }

// String returns the string representation of the header value.
func (hdr Allow) String() string { return hdr.RenderValue() }

// Clone returns a copy of the header.
func (hdr Allow) Clone() Header { return slices.Clone(hdr) }

// Equal compares this header with another for equality.
func (hdr Allow) Equal(val any) bool {
	other, ok := castHdr[Allow](val)
	if !ok || other == nil {
		return false
	}
	return slices.EqualFunc(hdr, *other, func(mtd1, mtd2 RequestMethod) bool { return mtd1.Equal(mtd2) })
}

// IsValid checks whether the header is syntactically valid.
func (hdr Allow) IsValid() bool {
	return !slices.ContainsFunc(hdr, func(mtd RequestMethod) bool { return !mtd.IsValid() })
}

// Has reports whether the method is allowed.
func (hdr Allow) Has(mtd RequestMethod) bool { return slices.Contains(hdr, mtd) }
