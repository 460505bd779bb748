package header

import (
	"io"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipmsg/internal/scan"
)

// WWWAuthenticate represents the WWW-Authenticate header field.
// The WWW-Authenticate header field contains the authentication challenge of a UAS or registrar.
type WWWAuthenticate struct {
	AuthChallenge
}

func readWWWAuthenticate(c *scan.Cursor) (Header, error) {
	v, err := readChallenge(c)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return &WWWAuthenticate{v}, nil
}

// CanonicName returns the canonical name of the header.
func (*WWWAuthenticate) CanonicName() Name { return "WWW-Authenticate" }

// CompactName returns the compact name of the header (WWW-Authenticate has no compact form).
func (*WWWAuthenticate) CompactName() Name { return "WWW-Authenticate" }

// RenderTo writes the header to the provided writer.
func (hdr *WWWAuthenticate) RenderTo(w io.Writer, opts *RenderOptions) (int, error) {
	if hdr == nil {
		return 0, nil
	}
	return errtrace.Wrap2(renderHdr(w, hdr, opts, hdr.renderValue))
}

func (hdr *WWWAuthenticate) renderValue(w io.Writer) (int, error) {
	if hdr.AuthChallenge == nil {
		return 0, nil
	}
	return errtrace.Wrap2(hdr.AuthChallenge.RenderTo(w))
}

// Render returns the string representation of the header.
func (hdr *WWWAuthenticate) Render(opts *RenderOptions) string {
	if hdr == nil {
		return ""
	}
	return renderHdrString(hdr, opts)
}

// RenderValue returns the header value without the name prefix.
func (hdr *WWWAuthenticate) RenderValue() string {
	if hdr == nil {
		return ""
	}
	return renderString(hdr.renderValue)
}

// String returns the string representation of the header value.
func (hdr *WWWAuthenticate) String() string { return hdr.RenderValue() }

// Clone returns a copy of the header.
func (hdr *WWWAuthenticate) Clone() Header {
	if hdr == nil {
		return nil
	}
	if hdr.AuthChallenge == nil {
		return &WWWAuthenticate{}
	}
	return &WWWAuthenticate{hdr.AuthChallenge.Clone()}
}

// Equal compares this header with another for equality.
func (hdr *WWWAuthenticate) Equal(val any) bool {
	other, ok := castHdr[WWWAuthenticate](val)
	if !ok {
		return false
	}
	if hdr == other {
		return true
	} else if hdr == nil || other == nil {
		return false
	}
	if hdr.AuthChallenge == nil || other.AuthChallenge == nil {
		return hdr.AuthChallenge == nil && other.AuthChallenge == nil
	}
	return hdr.AuthChallenge.Equal(other.AuthChallenge)
}

// IsValid checks whether the header is syntactically valid.
func (hdr *WWWAuthenticate) IsValid() bool {
	return hdr != nil && hdr.AuthChallenge != nil && hdr.AuthChallenge.IsValid()
}
