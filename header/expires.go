package header

import (
	"io"
	"strconv"
	"time"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipmsg/internal/scan"
)

// Expires represents the Expires header field.
// The Expires header field gives the relative time after which the message or content expires, in seconds.
type Expires uint32

func readExpires(c *scan.Cursor) (Header, error) {
	n, err := readNumber(c, 32)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return Expires(n), nil
}

// CanonicName returns the canonical name of the header.
func (Expires) CanonicName() Name { return "Expires" }

// CompactName returns the compact name of the header (Expires has no compact form).
func (Expires) CompactName() Name { return "Expires" }

// RenderTo writes the header to the provided writer.
func (hdr Expires) RenderTo(w io.Writer, opts *RenderOptions) (int, error) {
	return errtrace.Wrap2(renderHdr(w, hdr, opts, hdr.renderValue))
}

func (hdr Expires) renderValue(w io.Writer) (int, error) {
	return errtrace.Wrap2(io.WriteString(w, hdr.RenderValue()))
}

// Render returns the string representation of the header.
func (hdr Expires) Render(opts *RenderOptions) string { return renderHdrString(hdr, opts) }

// RenderValue returns the header value without the name prefix.
func (hdr Expires) RenderValue() string { return strconv.FormatUint(uint64(hdr), 10) }

// String returns the string representation of the header value.
func (hdr Expires) String() string { return hdr.RenderValue() }

// Clone returns a copy of the header.
func (hdr Expires) Clone() Header { return hdr }

// Equal compares this header with another for equality.
func (hdr Expires) Equal(val any) bool {
	other, ok := castHdr[Expires](val)
	return ok && other != nil && hdr == *other
}

// IsValid checks whether the header is syntactically valid.
func (hdr Expires) IsValid() bool { return true }

// Duration returns the expiration interval as [time.Duration].
func (hdr Expires) Duration() time.Duration { return time.Duration(hdr) * time.Second }
