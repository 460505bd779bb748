package header

import (
	"io"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipmsg/internal/scan"
	"github.com/ghettovoice/sipmsg/internal/util"
)

// Organization represents the Organization header field.
// The Organization header field conveys the name of the organization to which the SIP element issuing the message belongs.
type Organization string

func readOrganization(c *scan.Cursor) (Header, error) {
	s, err := c.ReadText()
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return Organization(s), nil
}

// CanonicName returns the canonical name of the header.
func (Organization) CanonicName() Name { return "Organization" }

// CompactName returns the compact name of the header (Organization has no compact form).
func (Organization) CompactName() Name { return "Organization" }

// RenderTo writes the header to the provided writer.
func (hdr Organization) RenderTo(w io.Writer, opts *RenderOptions) (int, error) {
	return errtrace.Wrap2(renderHdr(w, hdr, opts, hdr.renderValue))
}

func (hdr Organization) renderValue(w io.Writer) (int, error) {
	return errtrace.Wrap2(writeString(w, hdr))
}

// Render returns the string representation of the header.
func (hdr Organization) Render(opts *RenderOptions) string { return renderHdrString(hdr, opts) }

// RenderValue returns the header value without the name prefix.
func (hdr Organization) RenderValue() string { return string(hdr) }

// String returns the string representation of the header value.
func (hdr Organization) String() string { return string(hdr) }

// Clone returns a copy of the header.
func (hdr Organization) Clone() Header { return hdr }

// Equal compares this header with another for equality.
func (hdr Organization) Equal(val any) bool {
	other, ok := castHdr[Organization](val)
	return ok && other != nil && hdr == *other
}

// IsValid checks whether the header is syntactically valid.
func (hdr Organization) IsValid() bool { return util.IsText(string(hdr)) }
