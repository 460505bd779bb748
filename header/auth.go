package header

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipmsg/internal/grammar"
	"github.com/ghettovoice/sipmsg/internal/ioutil"
	"github.com/ghettovoice/sipmsg/internal/scan"
	"github.com/ghettovoice/sipmsg/internal/util"
)

// AuthCredentials are the credentials of Authorization and Proxy-Authorization headers.
// Implemented by [*DigestCredentials], [*BearerCredentials] and [*AnyCredentials].
type AuthCredentials interface {
	Scheme() string
	RenderTo(w io.Writer) (int, error)
	String() string
	Equal(val any) bool
	IsValid() bool
	Clone() AuthCredentials
}

// AuthChallenge is the challenge of WWW-Authenticate and Proxy-Authenticate headers.
// Implemented by [*DigestChallenge], [*BearerChallenge] and [*AnyChallenge].
type AuthChallenge interface {
	Scheme() string
	RenderTo(w io.Writer) (int, error)
	String() string
	Equal(val any) bool
	IsValid() bool
	Clone() AuthChallenge
}

// authWriter writes comma-separated auth-params.
type authWriter struct {
	cw *ioutil.CountingWriter
	n  int
}

func (aw *authWriter) name(name string) {
	if aw.n > 0 {
		aw.cw.WriteString(", ")
	}
	aw.n++
	aw.cw.WriteString(name)
	aw.cw.WriteByte('=')
}

func (aw *authWriter) token(name, v string) {
	if v == "" {
		return
	}
	aw.name(name)
	aw.cw.WriteString(v)
}

func (aw *authWriter) quoted(name, v string) { aw.quotedOpt(name, v, false) }

// quotedOpt writes an empty value too when the parameter is present.
func (aw *authWriter) quotedOpt(name, v string, present bool) {
	if v == "" && !present {
		return
	}
	aw.name(name)
	aw.cw.WriteQuoted(v)
}

func (aw *authWriter) nonceCount(n uint32, present bool) {
	if n > 0 || present {
		aw.token("nc", formatNonceCount(n))
	}
}

func (aw *authWriter) params(ps Params) {
	for _, p := range ps {
		if aw.n > 0 {
			aw.cw.WriteString(", ")
		}
		aw.n++
		aw.cw.WriteString(p.Name)
		switch {
		case p.Quoted:
			aw.cw.WriteByte('=')
			aw.cw.WriteQuoted(p.Value)
		case p.Value != "":
			aw.cw.WriteByte('=')
			aw.cw.WriteString(p.Value)
		}
	}
}

func renderAuth(w io.Writer, scheme string, fn func(aw *authWriter)) (int, error) {
	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	cw.WriteString(scheme)
	cw.WriteByte(' ')
	fn(&authWriter{cw: cw})
	return errtrace.Wrap2(cw.Result())
}

func readAuthParams[T any](c *scan.Cursor, dst *T, fields grammar.Fields[T]) (Params, error) {
	return errtrace.Wrap2(grammar.ReadCommaParams(c, dst, grammar.AuthParams, fields))
}

// readAuthScheme reads the auth-scheme and the mandatory whitespace after it.
func readAuthScheme(c *scan.Cursor) (string, error) {
	scheme, err := c.ReadToken()
	if err != nil {
		return "", errtrace.Wrap(err)
	}
	if c.SkipSpace() == 0 && !c.AtEOL() {
		return "", errtrace.Wrap(c.Unexpected("whitespace"))
	}
	return scheme, nil
}

// token68 = 1*( ALPHA / DIGIT / "-" / "." / "_" / "~" / "+" / "/" ) *"="
func readToken68(c *scan.Cursor) (string, bool) {
	m := c.Mark()
	start := c.Offset()
	if c.ReadWhileFunc(isToken68Char) == "" {
		return "", false
	}
	c.ReadWhileFunc(func(b byte) bool { return b == '=' })
	tok := c.Since(start)
	m2 := c.Mark()
	c.SkipSpace()
	if !c.AtEOL() {
		c.Rewind(m)
		return "", false
	}
	c.Rewind(m2)
	return tok, true
}

func isToken68Char(b byte) bool {
	return scan.Is(b, scan.Alnum) || strings.IndexByte("-._~+/", b) >= 0
}

func readCredentials(c *scan.Cursor) (AuthCredentials, error) {
	scheme, err := readAuthScheme(c)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	switch {
	case util.EqFold(scheme, "digest"):
		crd := new(DigestCredentials)
		if crd.Params, err = readAuthParams(c, crd, digestCredentialsFields); err != nil {
			return nil, errtrace.Wrap(err)
		}
		return crd, nil
	case util.EqFold(scheme, "bearer"):
		tok, ok := readToken68(c)
		if !ok {
			return nil, errtrace.Wrap(c.Unexpected("bearer token"))
		}
		return &BearerCredentials{Token: tok}, nil
	default:
		crd := &AnyCredentials{AuthScheme: scheme}
		if tok, ok := readToken68(c); ok {
			crd.Token = tok
			return crd, nil
		}
		if c.AtEOL() {
			return crd, nil
		}
		if crd.Params, err = readAuthParams[AnyCredentials](c, crd, nil); err != nil {
			return nil, errtrace.Wrap(err)
		}
		return crd, nil
	}
}

// DigestCredentials represents the digest authentication credentials (RFC 3261 Section 25.1).
// Quoted values are kept without quotes, quoted pairs are kept escaped.
type DigestCredentials struct {
	Username   string `json:"username,omitempty"`
	Realm      string `json:"realm,omitempty"`
	Nonce      string `json:"nonce,omitempty"`
	URI        string `json:"uri,omitempty"`
	Response   string `json:"response,omitempty"`
	Algorithm  string `json:"algorithm,omitempty"`
	CNonce     string `json:"cnonce,omitempty"`
	Opaque     string `json:"opaque,omitempty"`
	QOP        string `json:"qop,omitempty"`
	NonceCount uint32 `json:"nc,omitempty"`
	Params     Params `json:"params,omitempty"`
	// HasOpaque and HasNonceCount keep opaque="" and nc=00000000 on the wire.
	HasOpaque     bool `json:"has_opaque,omitempty"`
	HasNonceCount bool `json:"has_nc,omitempty"`
}

var digestCredentialsFields = grammar.Fields[DigestCredentials]{
	"username":  func(crd *DigestCredentials, p Param) error { crd.Username = p.Value; return nil },
	"realm":     func(crd *DigestCredentials, p Param) error { crd.Realm = p.Value; return nil },
	"nonce":     func(crd *DigestCredentials, p Param) error { crd.Nonce = p.Value; return nil },
	"uri":       func(crd *DigestCredentials, p Param) error { crd.URI = p.Value; return nil },
	"response":  func(crd *DigestCredentials, p Param) error { crd.Response = p.Value; return nil },
	"algorithm": func(crd *DigestCredentials, p Param) error { crd.Algorithm = p.Value; return nil },
	"cnonce":    func(crd *DigestCredentials, p Param) error { crd.CNonce = p.Value; return nil },
	"qop":       func(crd *DigestCredentials, p Param) error { crd.QOP = p.Value; return nil },
	"opaque": func(crd *DigestCredentials, p Param) error {
		crd.Opaque, crd.HasOpaque = p.Value, true
		return nil
	},
	"nc": func(crd *DigestCredentials, p Param) error {
		n, err := parseNonceCount(p)
		if err != nil {
			return err
		}
		crd.NonceCount, crd.HasNonceCount = n, true
		return nil
	},
}

// nc-value = 8LHEX
func parseNonceCount(p Param) (uint32, error) {
	if p.Quoted || len(p.Value) != 8 {
		return 0, scan.ErrInvalidNumber
	}
	n, err := strconv.ParseUint(p.Value, 16, 32)
	if err != nil {
		return 0, scan.ErrInvalidNumber
	}
	return uint32(n), nil
}

func formatNonceCount(n uint32) string { return fmt.Sprintf("%08x", n) }

// Scheme returns "Digest".
func (*DigestCredentials) Scheme() string { return "Digest" }

// RenderTo writes the credentials to the provided writer.
func (crd *DigestCredentials) RenderTo(w io.Writer) (int, error) {
	if crd == nil {
		return 0, nil
	}
	return errtrace.Wrap2(renderAuth(w, crd.Scheme(), func(aw *authWriter) {
		aw.quoted("username", crd.Username)
		aw.quoted("realm", crd.Realm)
		aw.quoted("nonce", crd.Nonce)
		aw.quoted("uri", crd.URI)
		aw.quoted("response", crd.Response)
		aw.token("algorithm", crd.Algorithm)
		aw.quoted("cnonce", crd.CNonce)
		aw.quotedOpt("opaque", crd.Opaque, crd.HasOpaque)
		aw.token("qop", crd.QOP)
		aw.nonceCount(crd.NonceCount, crd.HasNonceCount)
		aw.params(crd.Params)
	}))
}

func (crd *DigestCredentials) String() string {
	if crd == nil {
		return ""
	}
	return renderString(crd.RenderTo)
}

// Equal compares credentials. Algorithm and qop are compared case-insensitively.
func (crd *DigestCredentials) Equal(val any) bool {
	other, ok := castHdr[DigestCredentials](val)
	if !ok {
		return false
	}
	if crd == other {
		return true
	} else if crd == nil || other == nil {
		return false
	}
	return crd.Username == other.Username &&
		crd.Realm == other.Realm &&
		crd.Nonce == other.Nonce &&
		crd.URI == other.URI &&
		util.EqFold(crd.Response, other.Response) &&
		util.EqFold(crd.Algorithm, other.Algorithm) &&
		crd.CNonce == other.CNonce &&
		crd.Opaque == other.Opaque &&
		(crd.HasOpaque || crd.Opaque != "") == (other.HasOpaque || other.Opaque != "") &&
		util.EqFold(crd.QOP, other.QOP) &&
		crd.NonceCount == other.NonceCount &&
		(crd.HasNonceCount || crd.NonceCount > 0) == (other.HasNonceCount || other.NonceCount > 0) &&
		crd.Params.Equal(other.Params)
}

// IsValid checks whether the credentials carry the mandatory digest-response fields.
func (crd *DigestCredentials) IsValid() bool {
	return crd != nil && crd.Username != "" && crd.Realm != "" && crd.Nonce != "" &&
		crd.URI != "" && crd.Response != "" &&
		(crd.Algorithm == "" || scan.IsToken(crd.Algorithm)) &&
		(crd.QOP == "" || scan.IsToken(crd.QOP))
}

// Clone returns a copy of the credentials.
func (crd *DigestCredentials) Clone() AuthCredentials {
	if crd == nil {
		return nil
	}
	crd2 := *crd
	crd2.Params = crd.Params.Clone()
	return &crd2
}

// BearerCredentials represents the bearer token credentials (RFC 8898).
type BearerCredentials struct {
	Token string `json:"token"`
}

// Scheme returns "Bearer".
func (*BearerCredentials) Scheme() string { return "Bearer" }

// RenderTo writes the credentials to the provided writer.
func (crd *BearerCredentials) RenderTo(w io.Writer) (int, error) {
	if crd == nil {
		return 0, nil
	}
	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	cw.WriteString("Bearer ")
	cw.WriteString(crd.Token)
	return errtrace.Wrap2(cw.Result())
}

func (crd *BearerCredentials) String() string {
	if crd == nil {
		return ""
	}
	return renderString(crd.RenderTo)
}

// Equal compares credentials.
func (crd *BearerCredentials) Equal(val any) bool {
	other, ok := castHdr[BearerCredentials](val)
	if !ok {
		return false
	}
	if crd == other {
		return true
	} else if crd == nil || other == nil {
		return false
	}
	return crd.Token == other.Token
}

// IsValid checks whether the token is not empty.
func (crd *BearerCredentials) IsValid() bool { return crd != nil && crd.Token != "" }

// Clone returns a copy of the credentials.
func (crd *BearerCredentials) Clone() AuthCredentials {
	if crd == nil {
		return nil
	}
	crd2 := *crd
	return &crd2
}

// AnyCredentials represents credentials of any other scheme,
// either a token68 value or a list of auth-params.
type AnyCredentials struct {
	AuthScheme string `json:"scheme"`
	Token      string `json:"token,omitempty"`
	Params     Params `json:"params,omitempty"`
}

// Scheme returns the auth-scheme.
func (crd *AnyCredentials) Scheme() string {
	if crd == nil {
		return ""
	}
	return crd.AuthScheme
}

// RenderTo writes the credentials to the provided writer.
func (crd *AnyCredentials) RenderTo(w io.Writer) (int, error) {
	if crd == nil {
		return 0, nil
	}
	return errtrace.Wrap2(renderAnyAuth(w, crd.AuthScheme, crd.Token, crd.Params))
}

func renderAnyAuth(w io.Writer, scheme, tok string, ps Params) (int, error) {
	if tok == "" && len(ps) == 0 {
		return errtrace.Wrap2(io.WriteString(w, scheme))
	}
	return errtrace.Wrap2(renderAuth(w, scheme, func(aw *authWriter) {
		if tok != "" {
			aw.cw.WriteString(tok)
			return
		}
		aw.params(ps)
	}))
}

func (crd *AnyCredentials) String() string {
	if crd == nil {
		return ""
	}
	return renderString(crd.RenderTo)
}

// Equal compares credentials. Schemes are compared case-insensitively.
func (crd *AnyCredentials) Equal(val any) bool {
	other, ok := castHdr[AnyCredentials](val)
	if !ok {
		return false
	}
	if crd == other {
		return true
	} else if crd == nil || other == nil {
		return false
	}
	return util.EqFold(crd.AuthScheme, other.AuthScheme) && crd.Token == other.Token && crd.Params.Equal(other.Params)
}

// IsValid checks whether the scheme is a valid token.
func (crd *AnyCredentials) IsValid() bool { return crd != nil && scan.IsToken(crd.AuthScheme) }

// Clone returns a copy of the credentials.
func (crd *AnyCredentials) Clone() AuthCredentials {
	if crd == nil {
		return nil
	}
	crd2 := *crd
	crd2.Params = crd.Params.Clone()
	return &crd2
}

func readChallenge(c *scan.Cursor) (AuthChallenge, error) {
	scheme, err := readAuthScheme(c)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	switch {
	case util.EqFold(scheme, "digest"):
		cln := new(DigestChallenge)
		if cln.Params, err = readAuthParams(c, cln, digestChallengeFields); err != nil {
			return nil, errtrace.Wrap(err)
		}
		return cln, nil
	case util.EqFold(scheme, "bearer"):
		cln := new(BearerChallenge)
		if c.AtEOL() {
			return cln, nil
		}
		if cln.Params, err = readAuthParams(c, cln, bearerChallengeFields); err != nil {
			return nil, errtrace.Wrap(err)
		}
		return cln, nil
	default:
		cln := &AnyChallenge{AuthScheme: scheme}
		if tok, ok := readToken68(c); ok {
			cln.Token = tok
			return cln, nil
		}
		if c.AtEOL() {
			return cln, nil
		}
		if cln.Params, err = readAuthParams[AnyChallenge](c, cln, nil); err != nil {
			return nil, errtrace.Wrap(err)
		}
		return cln, nil
	}
}

// DigestChallenge represents the digest authentication challenge (RFC 3261 Section 25.1).
type DigestChallenge struct {
	Realm     string   `json:"realm,omitempty"`
	Domain    []string `json:"domain,omitempty"`
	Nonce     string   `json:"nonce,omitempty"`
	Opaque    string   `json:"opaque,omitempty"`
	Stale     bool     `json:"stale,omitempty"`
	Algorithm string   `json:"algorithm,omitempty"`
	QOP       []string `json:"qop,omitempty"`
	Params    Params   `json:"params,omitempty"`
	// HasOpaque keeps opaque="" on the wire, a client echoes it back.
	HasOpaque bool `json:"has_opaque,omitempty"`
	// HasStale keeps an explicit stale=false.
	HasStale bool `json:"has_stale,omitempty"`
}

var digestChallengeFields = grammar.Fields[DigestChallenge]{
	"realm":  func(cln *DigestChallenge, p Param) error { cln.Realm = p.Value; return nil },
	"nonce":  func(cln *DigestChallenge, p Param) error { cln.Nonce = p.Value; return nil },
	"opaque": func(cln *DigestChallenge, p Param) error {
		cln.Opaque, cln.HasOpaque = p.Value, true
		return nil
	},
	"domain": func(cln *DigestChallenge, p Param) error {
		cln.Domain = strings.Fields(p.Value)
		return nil
	},
	"stale": func(cln *DigestChallenge, p Param) error {
		switch {
		case util.EqFold(p.Value, "true"):
			cln.Stale = true
		case util.EqFold(p.Value, "false"):
			cln.Stale = false
		default:
			return scan.ErrUnexpectedByte
		}
		cln.HasStale = true
		return nil
	},
	"algorithm": func(cln *DigestChallenge, p Param) error { cln.Algorithm = p.Value; return nil },
	"qop": func(cln *DigestChallenge, p Param) error {
		cln.QOP = cln.QOP[:0]
		for opt := range strings.SplitSeq(p.Value, ",") {
			if opt = strings.TrimSpace(opt); opt != "" {
				cln.QOP = append(cln.QOP, opt)
			}
		}
		return nil
	},
}

// Scheme returns "Digest".
func (*DigestChallenge) Scheme() string { return "Digest" }

// RenderTo writes the challenge to the provided writer.
func (cln *DigestChallenge) RenderTo(w io.Writer) (int, error) {
	if cln == nil {
		return 0, nil
	}
	return errtrace.Wrap2(renderAuth(w, cln.Scheme(), func(aw *authWriter) {
		aw.quoted("realm", cln.Realm)
		aw.quoted("domain", strings.Join(cln.Domain, " "))
		aw.quoted("nonce", cln.Nonce)
		aw.quotedOpt("opaque", cln.Opaque, cln.HasOpaque)
		switch {
		case cln.Stale:
			aw.token("stale", "true")
		case cln.HasStale:
			aw.token("stale", "false")
		}
		aw.token("algorithm", cln.Algorithm)
		aw.quoted("qop", strings.Join(cln.QOP, ","))
		aw.params(cln.Params)
	}))
}

func (cln *DigestChallenge) String() string {
	if cln == nil {
		return ""
	}
	return renderString(cln.RenderTo)
}

// Equal compares challenges.
func (cln *DigestChallenge) Equal(val any) bool {
	other, ok := castHdr[DigestChallenge](val)
	if !ok {
		return false
	}
	if cln == other {
		return true
	} else if cln == nil || other == nil {
		return false
	}
	return cln.Realm == other.Realm &&
		slices.Equal(cln.Domain, other.Domain) &&
		cln.Nonce == other.Nonce &&
		cln.Opaque == other.Opaque &&
		(cln.HasOpaque || cln.Opaque != "") == (other.HasOpaque || other.Opaque != "") &&
		cln.Stale == other.Stale &&
		util.EqFold(cln.Algorithm, other.Algorithm) &&
		eqFoldList(cln.QOP, other.QOP) &&
		cln.Params.Equal(other.Params)
}

// IsValid checks whether the challenge has realm and nonce.
func (cln *DigestChallenge) IsValid() bool {
	return cln != nil && cln.Realm != "" && cln.Nonce != "" &&
		(cln.Algorithm == "" || scan.IsToken(cln.Algorithm)) &&
		isTokenList(cln.QOP)
}

// Clone returns a copy of the challenge.
func (cln *DigestChallenge) Clone() AuthChallenge {
	if cln == nil {
		return nil
	}
	cln2 := *cln
	cln2.Domain = slices.Clone(cln.Domain)
	cln2.QOP = slices.Clone(cln.QOP)
	cln2.Params = cln.Params.Clone()
	return &cln2
}

// BearerChallenge represents the bearer authentication challenge (RFC 8898).
type BearerChallenge struct {
	Realm       string `json:"realm,omitempty"`
	Scope       string `json:"scope,omitempty"`
	AuthzServer string `json:"authz_server,omitempty"`
	Error       string `json:"error,omitempty"`
	Params      Params `json:"params,omitempty"`
}

var bearerChallengeFields = grammar.Fields[BearerChallenge]{
	"realm":        func(cln *BearerChallenge, p Param) error { cln.Realm = p.Value; return nil },
	"scope":        func(cln *BearerChallenge, p Param) error { cln.Scope = p.Value; return nil },
	"authz_server": func(cln *BearerChallenge, p Param) error { cln.AuthzServer = p.Value; return nil },
	"error":        func(cln *BearerChallenge, p Param) error { cln.Error = p.Value; return nil },
}

// Scheme returns "Bearer".
func (*BearerChallenge) Scheme() string { return "Bearer" }

// RenderTo writes the challenge to the provided writer.
func (cln *BearerChallenge) RenderTo(w io.Writer) (int, error) {
	if cln == nil {
		return 0, nil
	}
	return errtrace.Wrap2(renderAuth(w, cln.Scheme(), func(aw *authWriter) {
		aw.quoted("realm", cln.Realm)
		aw.quoted("scope", cln.Scope)
		aw.quoted("authz_server", cln.AuthzServer)
		aw.quoted("error", cln.Error)
		aw.params(cln.Params)
	}))
}

func (cln *BearerChallenge) String() string {
	if cln == nil {
		return ""
	}
	return renderString(cln.RenderTo)
}

// Equal compares challenges.
func (cln *BearerChallenge) Equal(val any) bool {
	other, ok := castHdr[BearerChallenge](val)
	if !ok {
		return false
	}
	if cln == other {
		return true
	} else if cln == nil || other == nil {
		return false
	}
	return cln.Realm == other.Realm &&
		cln.Scope == other.Scope &&
		cln.AuthzServer == other.AuthzServer &&
		cln.Error == other.Error &&
		cln.Params.Equal(other.Params)
}

// IsValid checks whether the challenge is valid.
func (cln *BearerChallenge) IsValid() bool { return cln != nil }

// Clone returns a copy of the challenge.
func (cln *BearerChallenge) Clone() AuthChallenge {
	if cln == nil {
		return nil
	}
	cln2 := *cln
	cln2.Params = cln.Params.Clone()
	return &cln2
}

// AnyChallenge represents a challenge of any other scheme.
type AnyChallenge struct {
	AuthScheme string `json:"scheme"`
	Token      string `json:"token,omitempty"`
	Params     Params `json:"params,omitempty"`
}

// Scheme returns the auth-scheme.
func (cln *AnyChallenge) Scheme() string {
	if cln == nil {
		return ""
	}
	return cln.AuthScheme
}

// RenderTo writes the challenge to the provided writer.
func (cln *AnyChallenge) RenderTo(w io.Writer) (int, error) {
	if cln == nil {
		return 0, nil
	}
	return errtrace.Wrap2(renderAnyAuth(w, cln.AuthScheme, cln.Token, cln.Params))
}

func (cln *AnyChallenge) String() string {
	if cln == nil {
		return ""
	}
	return renderString(cln.RenderTo)
}

// Equal compares challenges. Schemes are compared case-insensitively.
func (cln *AnyChallenge) Equal(val any) bool {
	other, ok := castHdr[AnyChallenge](val)
	if !ok {
		return false
	}
	if cln == other {
		return true
	} else if cln == nil || other == nil {
		return false
	}
	return util.EqFold(cln.AuthScheme, other.AuthScheme) && cln.Token == other.Token && cln.Params.Equal(other.Params)
}

// IsValid checks whether the scheme is a valid token.
func (cln *AnyChallenge) IsValid() bool { return cln != nil && scan.IsToken(cln.AuthScheme) }

// Clone returns a copy of the challenge.
func (cln *AnyChallenge) Clone() AuthChallenge {
	if cln == nil {
		return nil
	}
	cln2 := *cln
	cln2.Params = cln.Params.Clone()
	return &cln2
}
