package header

import (
	"io"
	"net/netip"
	"strconv"
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipmsg/internal/grammar"
	"github.com/ghettovoice/sipmsg/internal/ioutil"
	"github.com/ghettovoice/sipmsg/internal/scan"
	"github.com/ghettovoice/sipmsg/internal/types"
	"github.com/ghettovoice/sipmsg/uri"
)

// Via represents a single hop of the Via header field.
// The Via header field indicates the path taken by the request so far.
// Each comma-separated value of the header line is parsed into a separate Via.
//
//	Via           = ( "Via" / "v" ) HCOLON via-parm *(COMMA via-parm)
//	via-parm      = sent-protocol LWS sent-by *( SEMI via-params )
//	sent-protocol = protocol-name SLASH protocol-version SLASH transport
//
// Only the exact "SIP/2.0/" prefix is accepted, without whitespace around the slashes.
type Via struct {
	Proto     ProtoInfo      `json:"proto"`
	Transport TransportProto `json:"transport"`
	Addr      uri.HostPort   `json:"addr"`

	Branch   string     `json:"branch,omitempty"`
	TTL      uint8      `json:"ttl,omitempty"`
	HasTTL   bool       `json:"has_ttl,omitempty"`
	MAddr    string     `json:"maddr,omitempty"`
	Received netip.Addr `json:"received,omitzero"`
	RPort    RPort      `json:"rport,omitzero"`

	// Params are the via parameters other than the promoted ones.
	Params Params `json:"params,omitempty"`
	// Comment is the content of the trailing comment without the parentheses.
	Comment string `json:"comment,omitempty"`
}

// RPort is the rport parameter (RFC 3581).
// A parameter without value is Present with no Port.
type RPort struct {
	Present bool   `json:"present,omitempty"`
	Port    uint16 `json:"port,omitempty"`
	HasPort bool   `json:"has_port,omitempty"`
}

// MagicCookie prefixes branch values of RFC 3261 compliant transactions.
const MagicCookie = "z9hG4bK"

var viaFields = grammar.Fields[Via]{
	"branch": func(hdr *Via, p Param) (err error) {
		hdr.Branch, err = tokenParam(p)
		return err
	},
	"ttl": func(hdr *Via, p Param) error {
		n, err := uintParam(p, 8)
		if err != nil {
			return err
		}
		hdr.TTL, hdr.HasTTL = uint8(n), true
		return nil
	},
	"maddr": func(hdr *Via, p Param) error {
		if p.Quoted || p.Value == "" {
			return scan.ErrUnexpectedByte
		}
		hdr.MAddr = p.Value
		return nil
	},
	"received": func(hdr *Via, p Param) error {
		ip, err := netip.ParseAddr(strings.TrimSuffix(strings.TrimPrefix(p.Value, "["), "]"))
		if p.Quoted || err != nil {
			return scan.ErrInvalidHeader
		}
		hdr.Received = ip
		return nil
	},
	"rport": func(hdr *Via, p Param) error {
		hdr.RPort.Present = true
		if p.Value == "" && !p.Quoted {
			return nil
		}
		n, err := uintParam(p, 16)
		if err != nil {
			return err
		}
		if n == 0 {
			return scan.ErrInvalidNumber
		}
		hdr.RPort.Port, hdr.RPort.HasPort = uint16(n), true
		return nil
	},
}

func readVia(c *scan.Cursor) (Header, error) {
	hdr := new(Via)
	var err error
	if hdr.Proto, err = types.ReadSIP20(c); err != nil {
		return nil, errtrace.Wrap(err)
	}
	if err = c.Expect('/'); err != nil {
		return nil, errtrace.Wrap(err)
	}
	tp, err := c.ReadToken()
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	hdr.Transport = types.ParseTransportProto(tp)

	if c.SkipSpace() == 0 {
		return nil, errtrace.Wrap(c.Unexpected("whitespace"))
	}
	if hdr.Addr, err = uri.ReadHostPort(c); err != nil {
		return nil, errtrace.Wrap(err)
	}
	if hdr.Params, err = readHdrParams(c, hdr, viaFields); err != nil {
		return nil, errtrace.Wrap(err)
	}

	m := c.Mark()
	c.SkipSpace()
	if !c.Is('(') {
		c.Rewind(m)
		return hdr, nil
	}
	if hdr.Comment, err = c.ReadComment(); err != nil {
		return nil, errtrace.Wrap(err)
	}
	return hdr, nil
}

// CanonicName returns the canonical name of the header.
func (*Via) CanonicName() Name { return "Via" }

// CompactName returns the compact name of the header.
func (*Via) CompactName() Name { return "v" }

// RenderTo writes the header to the provided writer.
func (hdr *Via) RenderTo(w io.Writer, opts *RenderOptions) (int, error) {
	if hdr == nil {
		return 0, nil
	}
	return errtrace.Wrap2(renderHdr(w, hdr, opts, hdr.renderValue))
}

func (hdr *Via) renderValue(w io.Writer) (int, error) {
	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	cw.WriteString(hdr.Proto.String())
	cw.WriteByte('/')
	cw.WriteString(string(hdr.Transport))
	cw.WriteByte(' ')
	cw.Call(func(w io.Writer) (int, error) { return hdr.Addr.RenderTo(w, nil) })
	if hdr.Branch != "" {
		cw.WriteString(";branch=")
		cw.WriteString(hdr.Branch)
	}
	if hdr.HasTTL {
		cw.WriteString(";ttl=")
		cw.WriteString(strconv.FormatUint(uint64(hdr.TTL), 10))
	}
	if hdr.MAddr != "" {
		cw.WriteString(";maddr=")
		cw.WriteString(hdr.MAddr)
	}
	if hdr.Received.IsValid() {
		cw.WriteString(";received=")
		cw.WriteString(hdr.Received.String())
	}
	if hdr.RPort.Present {
		cw.WriteString(";rport")
		if hdr.RPort.HasPort {
			cw.WriteByte('=')
			cw.WriteString(strconv.FormatUint(uint64(hdr.RPort.Port), 10))
		}
	}
	cw.Call(renderParams(hdr.Params))
	if hdr.Comment != "" {
		cw.WriteString(" (")
		cw.WriteString(hdr.Comment)
		cw.WriteByte(')')
	}
	return errtrace.Wrap2(cw.Result())
}

// Render returns the string representation of the header.
func (hdr *Via) Render(opts *RenderOptions) string {
	if hdr == nil {
		return ""
	}
	return renderHdrString(hdr, opts)
}

// RenderValue returns the header value without the name prefix.
func (hdr *Via) RenderValue() string {
	if hdr == nil {
		return ""
	}
	return renderString(hdr.renderValue)
}

// String returns the string representation of the header value.
func (hdr *Via) String() string { return hdr.RenderValue() }

// Clone returns a copy of the header.
func (hdr *Via) Clone() Header {
	if hdr == nil {
		return nil
	}
	hdr2 := *hdr
	hdr2.Params = hdr.Params.Clone()
	return &hdr2
}

// Equal compares this header with another for equality.
func (hdr *Via) Equal(val any) bool {
	other, ok := castHdr[Via](val)
	if !ok {
		return false
	}
	if hdr == other {
		return true
	} else if hdr == nil || other == nil {
		return false
	}
	return hdr.Proto.Equal(other.Proto) &&
		hdr.Transport.Equal(other.Transport) &&
		hdr.Addr.Equal(other.Addr) &&
		hdr.Branch == other.Branch &&
		hdr.HasTTL == other.HasTTL && hdr.TTL == other.TTL &&
		strings.EqualFold(hdr.MAddr, other.MAddr) &&
		hdr.Received == other.Received &&
		hdr.RPort == other.RPort &&
		hdr.Params.Equal(other.Params) &&
		hdr.Comment == other.Comment
}

// IsValid checks whether the header is syntactically valid.
func (hdr *Via) IsValid() bool {
	return hdr != nil &&
		hdr.Proto.IsValid() &&
		hdr.Transport.IsValid() &&
		hdr.Addr.IsValid() &&
		(hdr.Branch == "" || scan.IsToken(hdr.Branch))
}

// IsRFC3261 reports whether the branch starts with the magic cookie.
func (hdr *Via) IsRFC3261() bool {
	return hdr != nil && strings.HasPrefix(hdr.Branch, MagicCookie)
}
