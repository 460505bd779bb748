package header

import (
	"io"
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipmsg/internal/scan"
)

// MIMEVersion represents the MIME-Version header field.
//
//	MIME-Version = "MIME-Version" HCOLON 1*DIGIT "." 1*DIGIT
type MIMEVersion string

func readMIMEVersion(c *scan.Cursor) (Header, error) {
	start := c.Offset()
	if _, err := c.ReadDigits(); err != nil {
		return nil, errtrace.Wrap(err)
	}
	if err := c.Expect('.'); err != nil {
		return nil, errtrace.Wrap(err)
	}
	if _, err := c.ReadDigits(); err != nil {
		return nil, errtrace.Wrap(err)
	}
	return MIMEVersion(c.Since(start)), nil
}

// CanonicName returns the canonical name of the header.
func (MIMEVersion) CanonicName() Name { return "MIME-Version" }

// CompactName returns the compact name of the header (MIME-Version has no compact form).
func (MIMEVersion) CompactName() Name { return "MIME-Version" }

// RenderTo writes the header to the provided writer.
func (hdr MIMEVersion) RenderTo(w io.Writer, opts *RenderOptions) (int, error) {
	return errtrace.Wrap2(renderHdr(w, hdr, opts, hdr.renderValue))
}

func (hdr MIMEVersion) renderValue(w io.Writer) (int, error) {
	return errtrace.Wrap2(writeString(w, hdr))
}

// Render returns the string representation of the header.
func (hdr MIMEVersion) Render(opts *RenderOptions) string { return renderHdrString(hdr, opts) }

// RenderValue returns the header value without the name prefix.
func (hdr MIMEVersion) RenderValue() string { return string(hdr) }

// String returns the string representation of the header value.
func (hdr MIMEVersion) String() string { return string(hdr) }

// Clone returns a copy of the header.
func (hdr MIMEVersion) Clone() Header { return hdr }

// Equal compares this header with another for equality.
func (hdr MIMEVersion) Equal(val any) bool {
	other, ok := castHdr[MIMEVersion](val)
	return ok && other != nil && hdr == *other
}

// IsValid checks whether the header is syntactically valid.
func (hdr MIMEVersion) IsValid() bool {
	major, minor, ok := strings.Cut(string(hdr), ".")
	return ok && scan.IsAll(major, scan.Digit) && scan.IsAll(minor, scan.Digit)
}
