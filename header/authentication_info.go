package header

import (
	"io"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipmsg/internal/grammar"
	"github.com/ghettovoice/sipmsg/internal/ioutil"
	"github.com/ghettovoice/sipmsg/internal/scan"
	"github.com/ghettovoice/sipmsg/internal/util"
)

// AuthenticationInfo represents the Authentication-Info header field.
// The Authentication-Info header field provides for mutual authentication with HTTP Digest.
//
//	Authentication-Info = "Authentication-Info" HCOLON ainfo *(COMMA ainfo)
//	ainfo               = nextnonce / message-qop / response-auth / cnonce / nonce-count
type AuthenticationInfo struct {
	NextNonce  string `json:"nextnonce,omitempty"`
	QOP        string `json:"qop,omitempty"`
	RspAuth    string `json:"rspauth,omitempty"`
	CNonce     string `json:"cnonce,omitempty"`
	NonceCount uint32 `json:"nc,omitempty"`
	Params     Params `json:"params,omitempty"`
	// HasNonceCount keeps nc=00000000 on the wire.
	HasNonceCount bool `json:"has_nc,omitempty"`
}

var authInfoFields = grammar.Fields[AuthenticationInfo]{
	"nextnonce": func(hdr *AuthenticationInfo, p Param) error { hdr.NextNonce = p.Value; return nil },
	"qop":       func(hdr *AuthenticationInfo, p Param) error { hdr.QOP = p.Value; return nil },
	"rspauth":   func(hdr *AuthenticationInfo, p Param) error { hdr.RspAuth = p.Value; return nil },
	"cnonce":    func(hdr *AuthenticationInfo, p Param) error { hdr.CNonce = p.Value; return nil },
	"nc": func(hdr *AuthenticationInfo, p Param) error {
		n, err := parseNonceCount(p)
		if err != nil {
			return err
		}
		hdr.NonceCount, hdr.HasNonceCount = n, true
		return nil
	},
}

func readAuthenticationInfo(c *scan.Cursor) (Header, error) {
	hdr := new(AuthenticationInfo)
	var err error
	if hdr.Params, err = readAuthParams(c, hdr, authInfoFields); err != nil {
		return nil, errtrace.Wrap(err)
	}
	return hdr, nil
}

// CanonicName returns the canonical name of the header.
func (*AuthenticationInfo) CanonicName() Name { return "Authentication-Info" }

// CompactName returns the compact name of the header (Authentication-Info has no compact form).
func (*AuthenticationInfo) CompactName() Name { return "Authentication-Info" }

// RenderTo writes the header to the provided writer.
func (hdr *AuthenticationInfo) RenderTo(w io.Writer, opts *RenderOptions) (int, error) {
	if hdr == nil {
		return 0, nil
	}
	return errtrace.Wrap2(renderHdr(w, hdr, opts, hdr.renderValue))
}

func (hdr *AuthenticationInfo) renderValue(w io.Writer) (int, error) {
	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	aw := &authWriter{cw: cw}
	aw.quoted("nextnonce", hdr.NextNonce)
	aw.token("qop", hdr.QOP)
	aw.quoted("rspauth", hdr.RspAuth)
	aw.quoted("cnonce", hdr.CNonce)
	aw.nonceCount(hdr.NonceCount, hdr.HasNonceCount)
	aw.params(hdr.Params)
	return errtrace.Wrap2(cw.Result())
}

// Render returns the string representation of the header.
func (hdr *AuthenticationInfo) Render(opts *RenderOptions) string {
	if hdr == nil {
		return ""
	}
	return renderHdrString(hdr, opts)
}

// RenderValue returns the header value without the name prefix.
func (hdr *AuthenticationInfo) RenderValue() string {
	if hdr == nil {
		return ""
	}
	return renderString(hdr.renderValue)
}

// String returns the string representation of the header value.
func (hdr *AuthenticationInfo) String() string { return hdr.RenderValue() }

// Clone returns a copy of the header.
func (hdr *AuthenticationInfo) Clone() Header {
	if hdr == nil {
		return nil
	}
	hdr2 := *hdr
	hdr2.Params = hdr.Params.Clone()
	return &hdr2
}

// Equal compares this header with another for equality.
func (hdr *AuthenticationInfo) Equal(val any) bool {
	other, ok := castHdr[AuthenticationInfo](val)
	if !ok {
		return false
	}
	if hdr == other {
		return true
	} else if hdr == nil || other == nil {
		return false
	}
	return hdr.NextNonce == other.NextNonce &&
		util.EqFold(hdr.QOP, other.QOP) &&
		util.EqFold(hdr.RspAuth, other.RspAuth) &&
		hdr.CNonce == other.CNonce &&
		hdr.NonceCount == other.NonceCount &&
		hdr.Params.Equal(other.Params)
}

// IsValid checks whether the header is syntactically valid.
func (hdr *AuthenticationInfo) IsValid() bool {
	return hdr != nil && (hdr.QOP == "" || scan.IsToken(hdr.QOP))
}
