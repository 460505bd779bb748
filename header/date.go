package header

import (
	"io"
	"net/http"
	"time"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipmsg/internal/scan"
	"github.com/ghettovoice/sipmsg/internal/util"
)

// Date represents the Date header field.
// The Date header field contains the date and time in RFC 1123 format, always in GMT.
type Date string

func readDate(c *scan.Cursor) (Header, error) {
	s, err := c.ReadText()
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return Date(s), nil
}

// CanonicName returns the canonical name of the header.
func (Date) CanonicName() Name { return "Date" }

// CompactName returns the compact name of the header (Date has no compact form).
func (Date) CompactName() Name { return "Date" }

// RenderTo writes the header to the provided writer.
func (hdr Date) RenderTo(w io.Writer, opts *RenderOptions) (int, error) {
	return errtrace.Wrap2(renderHdr(w, hdr, opts, hdr.renderValue))
}

func (hdr Date) renderValue(w io.Writer) (int, error) {
	return errtrace.Wrap2(writeString(w, hdr))
}

// Render returns the string representation of the header.
func (hdr Date) Render(opts *RenderOptions) string { return renderHdrString(hdr, opts) }

// RenderValue returns the header value without the name prefix.
func (hdr Date) RenderValue() string { return string(hdr) }

// String returns the string representation of the header value.
func (hdr Date) String() string { return string(hdr) }

// Clone returns a copy of the header.
func (hdr Date) Clone() Header { return hdr }

// Equal compares this header with another for equality.
func (hdr Date) Equal(val any) bool {
	other, ok := castHdr[Date](val)
	return ok && other != nil && hdr == *other
}

// IsValid checks whether the header is syntactically valid.
func (hdr Date) IsValid() bool { return util.IsText(string(hdr)) }

// Time parses the header value as RFC 1123 date.
func (hdr Date) Time() (time.Time, error) {
	return errtrace.Wrap2(time.Parse(time.RFC1123, string(hdr)))
}

// NewDate returns the Date header for t converted to GMT.
func NewDate(t time.Time) Date { return Date(t.UTC().Format(http.TimeFormat)) }
