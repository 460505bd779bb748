package header

import (
	"io"
	"strconv"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipmsg/internal/scan"
)

// MaxForwards represents the Max-Forwards header field.
// The Max-Forwards header field limits the number of proxies or gateways that can forward the request.
type MaxForwards uint32

func readMaxForwards(c *scan.Cursor) (Header, error) {
	n, err := readNumber(c, 32)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return MaxForwards(n), nil
}

// CanonicName returns the canonical name of the header.
func (MaxForwards) CanonicName() Name { return "Max-Forwards" }

// CompactName returns the compact name of the header (Max-Forwards has no compact form).
func (MaxForwards) CompactName() Name { return "Max-Forwards" }

// RenderTo writes the header to the provided writer.
func (hdr MaxForwards) RenderTo(w io.Writer, opts *RenderOptions) (int, error) {
	return errtrace.Wrap2(renderHdr(w, hdr, opts, hdr.renderValue))
}

func (hdr MaxForwards) renderValue(w io.Writer) (int, error) {
	return errtrace.Wrap2(io.WriteString(w, hdr.RenderValue()))
}

// Render returns the string representation of the header.
func (hdr MaxForwards) Render(opts *RenderOptions) string { return renderHdrString(hdr, opts) }

// RenderValue returns the header value without the name prefix.
func (hdr MaxForwards) RenderValue() string { return strconv.FormatUint(uint64(hdr), 10) }

// String returns the string representation of the header value.
func (hdr MaxForwards) String() string { return hdr.RenderValue() }

// Clone returns a copy of the header.
func (hdr MaxForwards) Clone() Header { return hdr }

// Equal compares this header with another for equality.
func (hdr MaxForwards) Equal(val any) bool {
	other, ok := castHdr[MaxForwards](val)
	return ok && other != nil && hdr == *other
}

// IsValid checks whether the header value lies in range 0..255.
func (hdr MaxForwards) IsValid() bool { return hdr <= 255 }
