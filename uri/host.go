package uri

import (
	"fmt"
	"io"
	"net/netip"
	"strconv"

	"braces.dev/errtrace"
	"github.com/miekg/dns"

	"github.com/ghettovoice/sipmsg/internal/ioutil"
	"github.com/ghettovoice/sipmsg/internal/scan"
	"github.com/ghettovoice/sipmsg/internal/util"
)

// Host is either a domain name or an IP address.
type Host struct {
	// Name is the domain name, empty for IP hosts.
	Name string `json:"name,omitempty"`
	// IP is the IPv4 or IPv6 address, zero for domain names.
	IP netip.Addr `json:"ip,omitzero"`
}

// DomainHost returns a Host with the given domain name.
func DomainHost(name string) Host { return Host{Name: name} }

// IPHost returns a Host with the given IP address.
func IPHost(ip netip.Addr) Host { return Host{IP: ip} }

// IsIP reports whether the host is an IP address.
func (h Host) IsIP() bool { return h.IP.IsValid() }

// IsZero reports whether the host is empty.
func (h Host) IsZero() bool { return h.Name == "" && !h.IP.IsValid() }

// IsValid reports whether the host is an IP address or a valid domain name.
func (h Host) IsValid() bool {
	if h.IP.IsValid() {
		return h.Name == ""
	}
	if !scan.IsAll(h.Name, scan.Host) {
		return false
	}
	_, ok := dns.IsDomainName(h.Name)
	return ok
}

func (h Host) String() string {
	switch {
	case h.IP.Is6():
		return "[" + h.IP.String() + "]"
	case h.IP.IsValid():
		return h.IP.String()
	default:
		return h.Name
	}
}

// Equal compares hosts. Domain names are compared case-insensitively.
func (h Host) Equal(val any) bool {
	var other Host
	switch v := val.(type) {
	case Host:
		other = v
	case *Host:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}
	if h.IP.IsValid() || other.IP.IsValid() {
		return h.IP == other.IP
	}
	return util.EqFold(h.Name, other.Name)
}

// HostPort is a host with an optional port.
type HostPort struct {
	Host    Host   `json:"host"`
	Port    uint16 `json:"port,omitempty"`
	HasPort bool   `json:"has_port,omitempty"`
}

// NewHostPort returns a HostPort with the given host and port.
func NewHostPort(host Host, port uint16) HostPort {
	return HostPort{Host: host, Port: port, HasPort: true}
}

// ParseHostPort parses a host with an optional port, like "atlanta.com:5060" or "[2001:db8::1]".
func ParseHostPort(s string) (HostPort, error) {
	c := scan.NewCursor(s)
	hp, err := ReadHostPort(c)
	if err != nil {
		return HostPort{}, errtrace.Wrap(err)
	}
	if !c.EOF() {
		return HostPort{}, errtrace.Wrap(c.Unexpected("end of host"))
	}
	return hp, nil
}

// ReadHostPort reads hostport = host [ ":" port ].
func ReadHostPort(c *scan.Cursor) (HostPort, error) {
	var hp HostPort
	if c.Is('[') {
		m := c.Mark()
		c.Advance()
		s := c.ReadWhileFunc(func(b byte) bool { return scan.Is(b, scan.Hex) || b == ':' || b == '.' })
		if err := c.Expect(']'); err != nil {
			return hp, errtrace.Wrap(err)
		}
		ip, err := netip.ParseAddr(s)
		if err != nil || !ip.Is6() {
			c.Rewind(m)
			return hp, errtrace.Wrap(c.Errorf(scan.ErrUnexpectedByte, "invalid IPv6 reference [%s]", s))
		}
		hp.Host.IP = ip
	} else {
		s := c.ReadWhile(scan.Host)
		if s == "" {
			return hp, errtrace.Wrap(c.Unexpected("host"))
		}
		if ip, err := netip.ParseAddr(s); err == nil && ip.Is4() {
			hp.Host.IP = ip
		} else {
			hp.Host.Name = s
		}
	}

	if c.Consume(':') {
		n, err := c.ReadUint(16)
		if err != nil {
			return hp, errtrace.Wrap(err)
		}
		hp.Port, hp.HasPort = uint16(n), true
	}
	return hp, nil
}

// RenderTo writes the host and port.
func (hp HostPort) RenderTo(w io.Writer, _ *RenderOptions) (int, error) {
	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	cw.WriteString(hp.Host.String())
	if hp.HasPort {
		cw.WriteByte(':')
		cw.WriteString(strconv.FormatUint(uint64(hp.Port), 10))
	}
	return errtrace.Wrap2(cw.Result())
}

// Render returns the host and port as string.
func (hp HostPort) Render(_ *RenderOptions) string {
	if !hp.HasPort {
		return hp.Host.String()
	}
	return hp.Host.String() + ":" + strconv.FormatUint(uint64(hp.Port), 10)
}

func (hp HostPort) String() string { return hp.Render(nil) }

func (hp HostPort) Format(f fmt.State, verb rune) {
	switch verb {
	case 's', 'v':
		if !f.Flag('+') && !f.Flag('#') {
			fmt.Fprint(f, hp.String())
			return
		}
		type hideMethods HostPort
		type HostPort hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), HostPort(hp))
	case 'q':
		fmt.Fprint(f, strconv.Quote(hp.String()))
	default:
		fmt.Fprint(f, hp.String())
	}
}

// Equal compares addresses. A missing port is not equal to any explicit port.
func (hp HostPort) Equal(val any) bool {
	var other HostPort
	switch v := val.(type) {
	case HostPort:
		other = v
	case *HostPort:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}
	return hp.Host.Equal(other.Host) && hp.HasPort == other.HasPort && hp.Port == other.Port
}

// IsValid reports whether the host is valid.
func (hp HostPort) IsValid() bool { return hp.Host.IsValid() }
