package header

import (
	"io"
	"strconv"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipmsg/internal/scan"
)

// ContentLength represents the Content-Length header field.
// The Content-Length header field indicates the size of the message body in decimal number of octets.
type ContentLength uint32

func readContentLength(c *scan.Cursor) (Header, error) {
	n, err := readNumber(c, 32)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return ContentLength(n), nil
}

// CanonicName returns the canonical name of the header.
func (ContentLength) CanonicName() Name { return "Content-Length" }

// CompactName returns the compact name of the header.
func (ContentLength) CompactName() Name { return "l" }

// RenderTo writes the header to the provided writer.
func (hdr ContentLength) RenderTo(w io.Writer, opts *RenderOptions) (int, error) {
	return errtrace.Wrap2(renderHdr(w, hdr, opts, hdr.renderValue))
}

func (hdr ContentLength) renderValue(w io.Writer) (int, error) {
	return errtrace.Wrap2(io.WriteString(w, hdr.RenderValue()))
}

// Render returns the string representation of the header.
func (hdr ContentLength) Render(opts *RenderOptions) string {
	return renderHdrString(hdr, opts)
}

// RenderValue returns the header value without the name prefix.
func (hdr ContentLength) RenderValue() string { return strconv.FormatUint(uint64(hdr), 10) }

// String returns the string representation of the header value.
func (hdr ContentLength) String() string { return hdr.RenderValue() }

// Clone returns a copy of the header.
func (hdr ContentLength) Clone() Header { return hdr }

// Equal compares this header with another for equality.
func (hdr ContentLength) Equal(val any) bool {
	other, ok := castHdr[ContentLength](val)
	return ok && other != nil && hdr == *other
}

// IsValid checks whether the header is syntactically valid.
func (hdr ContentLength) IsValid() bool { return true }
