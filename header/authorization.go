package header

import (
	"io"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipmsg/internal/scan"
)

// Authorization represents the Authorization header field.
// The Authorization header field contains authentication credentials of a UA.
type Authorization struct {
	AuthCredentials
}

func readAuthorization(c *scan.Cursor) (Header, error) {
	v, err := readCredentials(c)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return &Authorization{v}, nil
}

// CanonicName returns the canonical name of the header.
func (*Authorization) CanonicName() Name { return "Authorization" }

// CompactName returns the compact name of the header (Authorization has no compact form).
func (*Authorization) CompactName() Name { return "Authorization" }

// RenderTo writes the header to the provided writer.
func (hdr *Authorization) RenderTo(w io.Writer, opts *RenderOptions) (int, error) {
	if hdr == nil {
		return 0, nil
	}
	return errtrace.Wrap2(renderHdr(w, hdr, opts, hdr.renderValue))
}

func (hdr *Authorization) renderValue(w io.Writer) (int, error) {
	if hdr.AuthCredentials == nil {
		return 0, nil
	}
	return errtrace.Wrap2(hdr.AuthCredentials.RenderTo(w))
}

// Render returns the string representation of the header.
func (hdr *Authorization) Render(opts *RenderOptions) string {
	if hdr == nil {
		return ""
	}
	return renderHdrString(hdr, opts)
}

// RenderValue returns the header value without the name prefix.
func (hdr *Authorization) RenderValue() string {
	if hdr == nil {
		return ""
	}
	return renderString(hdr.renderValue)
}

// String returns the string representation of the header value.
func (hdr *Authorization) String() string { return hdr.RenderValue() }

// Clone returns a copy of the header.
func (hdr *Authorization) Clone() Header {
	if hdr == nil {
		return nil
	}
	if hdr.AuthCredentials == nil {
		return &Authorization{}
	}
	return &Authorization{hdr.AuthCredentials.Clone()}
}

// Equal compares this header with another for equality.
func (hdr *Authorization) Equal(val any) bool {
	other, ok := castHdr[Authorization](val)
	if !ok {
		return false
	}
	if hdr == other {
		return true
	} else if hdr == nil || other == nil {
		return false
	}
	if hdr.AuthCredentials == nil || other.AuthCredentials == nil {
		return hdr.AuthCredentials == nil && other.AuthCredentials == nil
	}
	return hdr.AuthCredentials.Equal(other.AuthCredentials)
}

// IsValid checks whether the header is syntactically valid.
func (hdr *Authorization) IsValid() bool {
	return hdr != nil && hdr.AuthCredentials != nil && hdr.AuthCredentials.IsValid()
}
