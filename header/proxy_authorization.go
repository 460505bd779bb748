package header

import (
	"io"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipmsg/internal/scan"
)

// ProxyAuthorization represents the Proxy-Authorization header field.
// The Proxy-Authorization header field allows the client to identify itself to a proxy that requires authentication.
type ProxyAuthorization struct {
	AuthCredentials
}

func readProxyAuthorization(c *scan.Cursor) (Header, error) {
	v, err := readCredentials(c)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return &ProxyAuthorization{v}, nil
}

// CanonicName returns the canonical name of the header.
func (*ProxyAuthorization) CanonicName() Name { return "Proxy-Authorization" }

// CompactName returns the compact name of the header (Proxy-Authorization has no compact form).
func (*ProxyAuthorization) CompactName() Name { return "Proxy-Authorization" }

// RenderTo writes the header to the provided writer.
func (hdr *ProxyAuthorization) RenderTo(w io.Writer, opts *RenderOptions) (int, error) {
	if hdr == nil {
		return 0, nil
	}
	return errtrace.Wrap2(renderHdr(w, hdr, opts, hdr.renderValue))
}

func (hdr *ProxyAuthorization) renderValue(w io.Writer) (int, error) {
	if hdr.AuthCredentials == nil {
		return 0, nil
	}
	return errtrace.Wrap2(hdr.AuthCredentials.RenderTo(w))
}

// Render returns the string representation of the header.
func (hdr *ProxyAuthorization) Render(opts *RenderOptions) string {
	if hdr == nil {
		return ""
	}
	return renderHdrString(hdr, opts)
}

// RenderValue returns the header value without the name prefix.
func (hdr *ProxyAuthorization) RenderValue() string {
	if hdr == nil {
		return ""
	}
	return renderString(hdr.renderValue)
}

// String returns the string representation of the header value.
func (hdr *ProxyAuthorization) String() string { return hdr.RenderValue() }

// Clone returns a copy of the header.
func (hdr *ProxyAuthorization) Clone() Header {
	if hdr == nil {
		return nil
	}
	if hdr.AuthCredentials == nil {
		return &ProxyAuthorization{}
	}
	return &ProxyAuthorization{hdr.AuthCredentials.Clone()}
}

// Equal compares this header with another for equality.
func (hdr *ProxyAuthorization) Equal(val any) bool {
	other, ok := castHdr[ProxyAuthorization](val)
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
func (hdr *ProxyAuthorization) IsValid() bool {
	return hdr != nil && hdr.AuthCredentials != nil && hdr.AuthCredentials.IsValid()
}
