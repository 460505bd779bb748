package header

import (
	"io"
	"slices"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipmsg/internal/grammar"
	"github.com/ghettovoice/sipmsg/internal/scan"
)

// ProxyRequire represents the Proxy-Require header field.
// The Proxy-Require header field is used to indicate proxy-sensitive features that must be supported by the proxy.
type ProxyRequire []string

func readProxyRequire(c *scan.Cursor) (Header, error) {
	toks, err := grammar.ReadTokenList(c)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return ProxyRequire(toks), nil
}

// CanonicName returns the canonical name of the header.
func (ProxyRequire) CanonicName() Name { return "Proxy-Require" }

// CompactName returns the compact name of the header (Proxy-Require has no compact form).
func (ProxyRequire) CompactName() Name { return "Proxy-Require" }

// RenderTo writes the header to the provided writer.
func (hdr ProxyRequire) RenderTo(w io.Writer, opts *RenderOptions) (int, error) {
	return errtrace.Wrap2(renderHdr(w, hdr, opts, hdr.renderValue))
}

func (hdr ProxyRequire) renderValue(w io.Writer) (int, error) {
	return errtrace.Wrap2(renderList(w, hdr, writeString[string]))
}

// Render returns the string representation of the header.
func (hdr ProxyRequire) Render(opts *RenderOptions) string { return renderHdrString(hdr, opts) }

// RenderValue returns the header value without the name prefix.
func (hdr ProxyRequire) RenderValue() string { return renderString(hdr.renderValue) }

// String returns the string representation of the header value.
func (hdr ProxyRequire) String() string { return hdr.RenderValue() }

// Clone returns a copy of the header.
func (hdr ProxyRequire) Clone() Header { return slices.Clone(hdr) }

// Equal compares this header with another for equality.
// Entries are compared case-insensitively.
func (hdr ProxyRequire) Equal(val any) bool {
	other, ok := castHdr[ProxyRequire](val)
	return ok && other != nil && eqFoldList(hdr, *other)
}

// IsValid checks whether the header is syntactically valid.
func (hdr ProxyRequire) IsValid() bool { return isTokenList(hdr) }
