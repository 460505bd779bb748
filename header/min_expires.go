package header

import (
	"io"
	"strconv"
	"time"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipmsg/internal/scan"
)

// MinExpires represents the Min-Expires header field.
// The Min-Expires header field conveys the minimum refresh interval supported for soft-state elements, in seconds.
type MinExpires uint32

func readMinExpires(c *scan.Cursor) (Header, error) {
	n, err := readNumber(c, 32)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return MinExpires(n), nil
}

// CanonicName returns the canonical name of the header.
func (MinExpires) CanonicName() Name { return "Min-Expires" }

// CompactName returns the compact name of the header (Min-Expires has no compact form).
func (MinExpires) CompactName() Name { return "Min-Expires" }

// RenderTo writes the header to the provided writer.
func (hdr MinExpires) RenderTo(w io.Writer, opts *RenderOptions) (int, error) {
	return errtrace.Wrap2(renderHdr(w, hdr, opts, hdr.renderValue))
}

func (hdr MinExpires) renderValue(w io.Writer) (int, error) {
	return errtrace.Wrap2(io.WriteString(w, hdr.RenderValue()))
}

// Render returns the string representation of the header.
func (hdr MinExpires) Render(opts *RenderOptions) string { return renderHdrString(hdr, opts) }

// RenderValue returns the header value without the name prefix.
func (hdr MinExpires) RenderValue() string { return strconv.FormatUint(uint64(hdr), 10) }

// String returns the string representation of the header value.
func (hdr MinExpires) String() string { return hdr.RenderValue() }

// Clone returns a copy of the header.
func (hdr MinExpires) Clone() Header { return hdr }

// Equal compares this header with another for equality.
func (hdr MinExpires) Equal(val any) bool {
	other, ok := castHdr[MinExpires](val)
	return ok && other != nil && hdr == *other
}

// IsValid checks whether the header is syntactically valid.
func (hdr MinExpires) IsValid() bool { return true }

// Duration returns the minimum interval as [time.Duration].
func (hdr MinExpires) Duration() time.Duration { return time.Duration(hdr) * time.Second }
