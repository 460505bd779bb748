package header

import (
	"io"
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipmsg/internal/scan"
)

// CallID represents the Call-ID header field.
// The Call-ID header field uniquely identifies a particular invitation or all registrations of a particular client.
//
//	Call-ID = ( "Call-ID" / "i" ) HCOLON callid
//	callid  = word [ "@" word ]
type CallID string

func readCallID(c *scan.Cursor) (Header, error) {
	id, err := readCallIDValue(c)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return id, nil
}

func readCallIDValue(c *scan.Cursor) (CallID, error) {
	start := c.Offset()
	if c.ReadWhile(scan.Word) == "" {
		return "", errtrace.Wrap(c.Unexpected("word"))
	}
	if c.Consume('@') {
		if c.ReadWhile(scan.Word) == "" {
			return "", errtrace.Wrap(c.Unexpected("word"))
		}
	}
	return CallID(c.Since(start)), nil
}

// CanonicName returns the canonical name of the header.
func (CallID) CanonicName() Name { return "Call-ID" }

// CompactName returns the compact name of the header.
func (CallID) CompactName() Name { return "i" }

// RenderTo writes the header to the provided writer.
func (hdr CallID) RenderTo(w io.Writer, opts *RenderOptions) (int, error) {
	return errtrace.Wrap2(renderHdr(w, hdr, opts, hdr.renderValue))
}

func (hdr CallID) renderValue(w io.Writer) (int, error) {
	return errtrace.Wrap2(writeString(w, hdr))
}

// Render returns the string representation of the header.
func (hdr CallID) Render(opts *RenderOptions) string { return renderHdrString(hdr, opts) }

// RenderValue returns the header value without the name prefix.
func (hdr CallID) RenderValue() string { return string(hdr) }

// String returns the string representation of the header value.
func (hdr CallID) String() string { return string(hdr) }

// Clone returns a copy of the header.
func (hdr CallID) Clone() Header { return hdr }

// Equal compares this header with another for equality.
// Call-IDs are compared case-sensitively.
func (hdr CallID) Equal(val any) bool {
	other, ok := castHdr[CallID](val)
	return ok && other != nil && hdr == *other
}

// IsValid checks whether the header is syntactically valid.
func (hdr CallID) IsValid() bool {
	word, host, found := strings.Cut(string(hdr), "@")
	return scan.IsAll(word, scan.Word) && (!found || scan.IsAll(host, scan.Word))
}
