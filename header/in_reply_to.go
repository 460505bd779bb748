package header

import (
	"io"
	"slices"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipmsg/internal/grammar"
	"github.com/ghettovoice/sipmsg/internal/scan"
)

// InReplyTo represents the In-Reply-To header field.
// The In-Reply-To header field enumerates the Call-IDs that this call references or returns.
//
//	In-Reply-To = "In-Reply-To" HCOLON callid *(COMMA callid)
type InReplyTo []CallID

func readInReplyTo(c *scan.Cursor) (Header, error) {
	var hdr InReplyTo
	err := grammar.ReadCommaList(c, func(c *scan.Cursor) error {
		id, err := readCallIDValue(c)
		if err != nil {
			return errtrace.Wrap(err)
		}
		hdr = append(hdr, id)
		return nil
	})
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return hdr, nil
}

// CanonicName returns the canonical name of the header.
func (InReplyTo) CanonicName() Name { return "In-Reply-To" }

// CompactName returns the compact name of the header (In-Reply-To has no compact form).
func (InReplyTo) CompactName() Name { return "In-Reply-To" }

// RenderTo writes the header to the provided writer.
func (hdr InReplyTo) RenderTo(w io.Writer, opts *RenderOptions) (int, error) {
	return errtrace.Wrap2(renderHdr(w, hdr, opts, hdr.renderValue))
}

func (hdr InReplyTo) renderValue(w io.Writer) (int, error) {
	return errtrace.Wrap2(renderList(w, hdr, writeString[CallID]))
}

// Render returns the string representation of the header.
func (hdr InReplyTo) Render(opts *RenderOptions) string { return renderHdrString(hdr, opts) }

// RenderValue returns the header value without the name prefix.
func (hdr InReplyTo) RenderValue() string { return renderString(hdr.renderValue) }

// String returns the string representation of the header value.
func (hdr InReplyTo) String() string { return hdr.RenderValue() }

// Clone returns a copy of the header.
func (hdr InReplyTo) Clone() Header { return slices.Clone(hdr) }

// Equal compares this header with another for equality.
func (hdr InReplyTo) Equal(val any) bool {
	other, ok := castHdr[InReplyTo](val)
	return ok && other != nil && slices.Equal(hdr, *other)
}

// IsValid checks whether the header is syntactically valid.
func (hdr InReplyTo) IsValid() bool {
	return len(hdr) > 0 && !slices.ContainsFunc(hdr, func(id CallID) bool { return !id.IsValid() })
}
