package uri

import (
	"fmt"
	"io"
	"strconv"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipmsg/internal/grammar"
	"github.com/ghettovoice/sipmsg/internal/ioutil"
	"github.com/ghettovoice/sipmsg/internal/scan"
	"github.com/ghettovoice/sipmsg/internal/types"
	"github.com/ghettovoice/sipmsg/internal/util"
)

// SIP represents a SIP or SIPS URI.
type SIP struct {
	Secured bool     `json:"secured,omitempty"`
	User    UserInfo `json:"user,omitzero"`
	Addr    HostPort `json:"addr"`

	// UserParam is the "user" parameter, like "phone" or "ip".
	UserParam string         `json:"user_param,omitempty"`
	Method    RequestMethod  `json:"method,omitempty"`
	Transport TransportProto `json:"transport,omitempty"`
	TTL       uint8          `json:"ttl,omitempty"`
	HasTTL    bool           `json:"has_ttl,omitempty"`
	LR        bool           `json:"lr,omitempty"`
	MAddr     string         `json:"maddr,omitempty"`

	// Params are the URI parameters other than the promoted ones.
	Params Params `json:"params,omitempty"`
	// Headers are the "?name=value&..." URI headers.
	Headers Params `json:"headers,omitempty"`
}

var sipFields = grammar.Fields[SIP]{
	"user": func(u *SIP, p types.Param) error {
		u.UserParam = p.Value
		return nil
	},
	"method": func(u *SIP, p types.Param) error {
		if !scan.IsToken(p.Value) {
			return scan.ErrUnexpectedByte
		}
		u.Method = types.ParseRequestMethod(p.Value)
		return nil
	},
	"transport": func(u *SIP, p types.Param) error {
		u.Transport = types.ParseTransportProto(p.Value)
		return nil
	},
	"ttl": func(u *SIP, p types.Param) error {
		n, err := strconv.ParseUint(p.Value, 10, 8)
		if err != nil {
			return scan.ErrInvalidNumber
		}
		u.TTL, u.HasTTL = uint8(n), true
		return nil
	},
	"lr": func(u *SIP, _ types.Param) error {
		u.LR = true
		return nil
	},
	"maddr": func(u *SIP, p types.Param) error {
		u.MAddr = p.Value
		return nil
	},
}

// ParseSIP parses a SIP or SIPS URI from the given input s (string or []byte).
func ParseSIP[T util.Byteseq](s T) (*SIP, error) {
	c := scan.NewCursor(string(s))
	u, err := Read(c)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	if !c.EOF() {
		return nil, errtrace.Wrap(c.Unexpected("end of URI"))
	}
	return u, nil
}

// Read reads a SIP or SIPS URI with parameters and headers.
//
//	SIP-URI = "sip:" [ userinfo ] hostport uri-parameters [ headers ]
func Read(c *scan.Cursor) (*SIP, error) {
	u, err := ReadAddrSpec(c)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	if u.Params, err = grammar.ReadParams(c, u, grammar.URIParams, sipFields); err != nil {
		return nil, errtrace.Wrap(err)
	}
	if c.Consume('?') {
		if u.Headers, err = readHeaders(c); err != nil {
			return nil, errtrace.Wrap(err)
		}
	}
	return u, nil
}

// ReadAddrSpec reads a SIP or SIPS URI without parameters and headers.
// It is used for addr-spec written without angle brackets, where trailing parameters
// belong to the header rather than to the URI.
func ReadAddrSpec(c *scan.Cursor) (*SIP, error) {
	m := c.Mark()
	scheme, err := readScheme(c)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}

	u := new(SIP)
	switch {
	case util.EqFold(scheme, "sip"):
	case util.EqFold(scheme, "sips"):
		u.Secured = true
	default:
		c.Rewind(m)
		return nil, errtrace.Wrap(c.Errorf(scan.ErrUnsupportedScheme, "%q", scheme))
	}

	if hasUserInfo(c.Remaining()) {
		if u.User, err = readUserInfo(c); err != nil {
			return nil, errtrace.Wrap(err)
		}
	}
	if u.Addr, err = ReadHostPort(c); err != nil {
		return nil, errtrace.Wrap(err)
	}
	return u, nil
}

// hasUserInfo reports whether '@' occurs before the end of the URI.
func hasUserInfo(s string) bool {
	for i := range len(s) {
		switch s[i] {
		case '@':
			return true
		case '>', ' ', '\t', '\r', '\n':
			return false
		}
	}
	return false
}

func readUserInfo(c *scan.Cursor) (UserInfo, error) {
	var ui UserInfo
	if ui.Username = c.ReadWhile(scan.User); ui.Username == "" {
		return ui, errtrace.Wrap(c.Unexpected("user"))
	}
	if c.Consume(':') {
		ui.Password = c.ReadWhile(scan.Password)
		ui.HasPassword = true
	}
	if err := c.Expect('@'); err != nil {
		return ui, errtrace.Wrap(err)
	}
	return ui, nil
}

// headers = "?" header *( "&" header )
// header  = hname "=" hvalue
func readHeaders(c *scan.Cursor) (Params, error) {
	var hs Params
	for {
		name := c.ReadWhile(scan.URIHeader)
		if name == "" {
			return nil, errtrace.Wrap(c.Unexpected("header name"))
		}
		if err := c.Expect('='); err != nil {
			return nil, errtrace.Wrap(err)
		}
		hs = append(hs, Param{Name: name, Value: c.ReadWhile(scan.URIHeader)})
		if !c.Consume('&') {
			return hs, nil
		}
	}
}

// Scheme returns "sips" for secured URIs and "sip" otherwise.
func (u *SIP) Scheme() string {
	if u == nil {
		return ""
	}
	if u.Secured {
		return "sips"
	}
	return "sip"
}

// RenderTo writes the SIP URI to the provided writer.
func (u *SIP) RenderTo(w io.Writer, _ *RenderOptions) (num int, err error) {
	if u == nil {
		return 0, nil
	}

	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	cw.WriteString(u.Scheme())
	cw.WriteByte(':')
	if !u.User.IsZero() {
		cw.Call(u.User.renderTo)
		cw.WriteByte('@')
	}
	cw.Call(func(w io.Writer) (int, error) { return u.Addr.RenderTo(w, nil) })
	cw.Call(u.renderParams)
	cw.Call(u.renderHeaders)
	return errtrace.Wrap2(cw.Result())
}

func (u *SIP) renderParams(w io.Writer) (int, error) {
	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	if u.Transport != "" {
		cw.WriteString(";transport=")
		cw.WriteString(string(u.Transport))
	}
	if u.UserParam != "" {
		cw.WriteString(";user=")
		cw.WriteString(u.UserParam)
	}
	if u.Method != "" {
		cw.WriteString(";method=")
		cw.WriteString(string(u.Method))
	}
	if u.HasTTL {
		cw.WriteString(";ttl=")
		cw.WriteString(strconv.FormatUint(uint64(u.TTL), 10))
	}
	if u.MAddr != "" {
		cw.WriteString(";maddr=")
		cw.WriteString(u.MAddr)
	}
	if u.LR {
		cw.WriteString(";lr")
	}
	cw.Call(func(w io.Writer) (int, error) { return u.Params.RenderTo(w, ';') })
	return errtrace.Wrap2(cw.Result())
}

func (u *SIP) renderHeaders(w io.Writer) (int, error) {
	if len(u.Headers) == 0 {
		return 0, nil
	}

	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	for i, h := range u.Headers {
		if i == 0 {
			cw.WriteByte('?')
		} else {
			cw.WriteByte('&')
		}
		cw.WriteString(h.Name)
		cw.WriteByte('=')
		cw.WriteString(h.Value)
	}
	return errtrace.Wrap2(cw.Result())
}

// Render returns the string representation of the SIP URI.
func (u *SIP) Render(opts *RenderOptions) string {
	if u == nil {
		return ""
	}
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	u.RenderTo(sb, opts) //nolint:errcheck
	return sb.String()
}

// String returns the string representation of the SIP URI.
func (u *SIP) String() string { return u.Render(nil) }

// Format implements fmt.Formatter for custom formatting of the SIP URI.
func (u *SIP) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		fmt.Fprint(f, u.String())
		return
	case 'q':
		fmt.Fprint(f, strconv.Quote(u.String()))
		return
	default:
		if !f.Flag('+') && !f.Flag('#') {
			fmt.Fprint(f, u.String())
			return
		}
		type hideMethods SIP
		type SIP hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), (*SIP)(u))
		return
	}
}

// Clone returns a deep copy of the SIP URI.
func (u *SIP) Clone() URI {
	if u == nil {
		return nil
	}
	return u.CloneSIP()
}

// CloneSIP is like [SIP.Clone] but returns the concrete type.
func (u *SIP) CloneSIP() *SIP {
	if u == nil {
		return nil
	}
	u2 := *u
	u2.Params = u.Params.Clone()
	u2.Headers = u.Headers.Clone()
	return &u2
}

// Equal compares this SIP URI with another for equality according to RFC 3261 Section 19.1.4.
func (u *SIP) Equal(val any) bool {
	var other *SIP
	switch v := val.(type) {
	case SIP:
		other = &v
	case *SIP:
		other = v
	default:
		return false
	}

	if u == other {
		return true
	} else if u == nil || other == nil {
		return false
	}

	return u.Secured == other.Secured &&
		u.User.Equal(other.User) &&
		u.Addr.Equal(other.Addr) &&
		u.UserParam == other.UserParam &&
		u.Method == other.Method &&
		u.Transport.Equal(other.Transport) &&
		u.HasTTL == other.HasTTL && u.TTL == other.TTL &&
		u.LR == other.LR &&
		util.EqFold(u.MAddr, other.MAddr) &&
		compareParams(u.Params, other.Params) &&
		compareHeaders(u.Headers, other.Headers)
}

// Any parameter appearing in both URIs must match, others are ignored.
func compareParams(ps1, ps2 Params) bool {
	for _, p := range ps1 {
		v2, ok := ps2.Get(p.Name)
		if !ok {
			continue
		}
		if v1, _ := ps1.Get(p.Name); !util.EqFold(grammar.Unescape(v1), grammar.Unescape(v2)) {
			return false
		}
	}
	return true
}

// URI header components are never ignored.
func compareHeaders(hs1, hs2 Params) bool {
	if len(hs1) != len(hs2) {
		return false
	}
	for _, h := range hs1 {
		v2, ok := hs2.Get(h.Name)
		if !ok || grammar.Unescape(h.Value) != grammar.Unescape(v2) {
			return false
		}
	}
	return true
}

// IsValid checks whether the SIP URI is syntactically valid.
func (u *SIP) IsValid() bool {
	return u != nil &&
		u.Addr.IsValid() &&
		(u.User.IsZero() || u.User.IsValid()) &&
		(u.Method == "" || u.Method.IsValid()) &&
		(u.Transport == "" || u.Transport.IsValid())
}

// MarshalText implements [encoding.TextMarshaler].
func (u *SIP) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (u *SIP) UnmarshalText(text []byte) error {
	u1, err := ParseSIP(string(text))
	if err != nil {
		*u = SIP{}
		return errtrace.Wrap(err)
	}
	*u = *u1
	return nil
}

// UserInfo is the user part of a SIP URI.
// Username and Password are kept escaped as they appear in the URI.
type UserInfo struct {
	Username    string `json:"username"`
	Password    string `json:"password,omitempty"`
	HasPassword bool   `json:"has_password,omitempty"`
}

// User returns UserInfo with the given username.
func User(name string) UserInfo { return UserInfo{Username: name} }

// UserPassword returns UserInfo with the given username and password.
func UserPassword(name, passwd string) UserInfo {
	return UserInfo{Username: name, Password: passwd, HasPassword: true}
}

func (ui UserInfo) renderTo(w io.Writer) (int, error) {
	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	cw.WriteString(ui.Username)
	if ui.HasPassword {
		cw.WriteByte(':')
		cw.WriteString(ui.Password)
	}
	return errtrace.Wrap2(cw.Result())
}

func (ui UserInfo) String() string {
	if ui.HasPassword {
		return ui.Username + ":" + ui.Password
	}
	return ui.Username
}

// Equal compares user info case-sensitively after unescaping.
func (ui UserInfo) Equal(val any) bool {
	var other UserInfo
	switch v := val.(type) {
	case UserInfo:
		other = v
	case *UserInfo:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}
	return grammar.Unescape(ui.Username) == grammar.Unescape(other.Username) &&
		ui.HasPassword == other.HasPassword &&
		grammar.Unescape(ui.Password) == grammar.Unescape(other.Password)
}

// IsValid reports whether the username and password contain only allowed characters.
func (ui UserInfo) IsValid() bool {
	return scan.IsAll(ui.Username, scan.User) && (ui.Password == "" || scan.IsAll(ui.Password, scan.Password))
}

// IsZero reports whether the user info is empty.
func (ui UserInfo) IsZero() bool {
	return ui.Username == "" && ui.Password == "" && !ui.HasPassword
}
