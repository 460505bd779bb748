package header

import (
	"io"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipmsg/internal/scan"
	"github.com/ghettovoice/sipmsg/internal/util"
)

// Priority represents the Priority header field.
// The Priority header field indicates the urgency of the request as perceived by the client.
//
//	Priority = "Priority" HCOLON priority-value
//	priority-value = "emergency" / "urgent" / "normal" / "non-urgent" / other-priority
type Priority string

// Well-known priority values.
const (
	PriorityEmergency Priority = "emergency"
	PriorityUrgent    Priority = "urgent"
	PriorityNormal    Priority = "normal"
	PriorityNonUrgent Priority = "non-urgent"
)

func readPriority(c *scan.Cursor) (Header, error) {
	tok, err := c.ReadToken()
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return Priority(tok), nil
}

// CanonicName returns the canonical name of the header.
func (Priority) CanonicName() Name { return "Priority" }

// CompactName returns the compact name of the header (Priority has no compact form).
func (Priority) CompactName() Name { return "Priority" }

// RenderTo writes the header to the provided writer.
func (hdr Priority) RenderTo(w io.Writer, opts *RenderOptions) (int, error) {
	return errtrace.Wrap2(renderHdr(w, hdr, opts, hdr.renderValue))
}

func (hdr Priority) renderValue(w io.Writer) (int, error) {
	return errtrace.Wrap2(writeString(w, hdr))
}

// Render returns the string representation of the header.
func (hdr Priority) Render(opts *RenderOptions) string { return renderHdrString(hdr, opts) }

// RenderValue returns the header value without the name prefix.
func (hdr Priority) RenderValue() string { return string(hdr) }

// String returns the string representation of the header value.
func (hdr Priority) String() string { return string(hdr) }

// Clone returns a copy of the header.
func (hdr Priority) Clone() Header { return hdr }

// Equal compares this header with another for equality, case-insensitively.
func (hdr Priority) Equal(val any) bool {
	other, ok := castHdr[Priority](val)
	return ok && other != nil && util.EqFold(hdr, *other)
}

// IsValid checks whether the header is syntactically valid.
func (hdr Priority) IsValid() bool { return scan.IsToken(string(hdr)) }
