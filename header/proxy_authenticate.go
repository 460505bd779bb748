package header

import (
	"io"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipmsg/internal/scan"
)

// ProxyAuthenticate represents the Proxy-Authenticate header field.
// The Proxy-Authenticate header field contains the authentication challenge of a proxy.
type ProxyAuthenticate struct {
	AuthChallenge
}

func readProxyAuthenticate(c *scan.Cursor) (Header, error) {
	v, err := readChallenge(c)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return &ProxyAuthenticate{v}, nil
}

// CanonicName returns the canonical name of the header.
func (*ProxyAuthenticate) CanonicName() Name { return "Proxy-Authenticate" }

// CompactName returns the compact name of the header (Proxy-Authenticate has no compact form).
func (*ProxyAuthenticate) CompactName() Name { return "Proxy-Authenticate" }

// RenderTo writes the header to the provided writer.
func (hdr *ProxyAuthenticate) RenderTo(w io.Writer, opts *RenderOptions) (int, error) {
	if hdr == nil {
		return 0, nil
	}
	return errtrace.Wrap2(renderHdr(w, hdr, opts, hdr.renderValue))
}

func (hdr *ProxyAuthenticate) renderValue(w io.Writer) (int, error) {
	if hdr.AuthChallenge == nil {
		return 0, nil
	}
	return errtrace.Wrap2(hdr.AuthChallenge.RenderTo(w))
}

// Render returns the string representation of the header.
func (hdr *ProxyAuthenticate) Render(opts *RenderOptions) string {
	if hdr == nil {
		return ""
	}
	return renderHdrString(hdr, opts)
}

// RenderValue returns the header value without the name prefix.
func (hdr *ProxyAuthenticate) RenderValue() string {
	if hdr == nil {
		return ""
	}
	return renderString(hdr.renderValue)
}

// String returns the string representation of the header value.
func (hdr *ProxyAuthenticate) String() string { return hdr.RenderValue() }

// Clone returns a copy of the header.
func (hdr *ProxyAuthenticate) Clone() Header {
	if hdr == nil {
		return nil
	}
	if hdr.AuthChallenge == nil {
		return &ProxyAuthenticate{}
	}
	return &ProxyAuthenticate{hdr.AuthChallenge.Clone()}
}

// Equal compares this header with another for equality.
func (hdr *ProxyAuthenticate) Equal(val any) bool {
	other, ok := castHdr[ProxyAuthenticate](val)
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
func (hdr *ProxyAuthenticate) IsValid() bool {
	return hdr != nil && hdr.AuthChallenge != nil && hdr.AuthChallenge.IsValid()
}
