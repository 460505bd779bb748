package header_test

import (
	"net/netip"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/ghettovoice/sipmsg/header"
	"github.com/ghettovoice/sipmsg/internal/scan"
	"github.com/ghettovoice/sipmsg/internal/types"
	"github.com/ghettovoice/sipmsg/uri"
)

var sip20 = header.ProtoInfo{Name: "SIP", Version: "2.0"}

func TestVia_Parse(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		in      string
		want    *header.Via
		wantErr error
	}{
		{
			name: "rport without value",
			in:   "SIP/2.0/UDP pc33.atlanta.com;rport;branch=z9hG4bKnashds8",
			want: &header.Via{
				Proto:     sip20,
				Transport: types.TransportProtoUDP,
				Addr:      uri.HostPort{Host: uri.DomainHost("pc33.atlanta.com")},
				Branch:    "z9hG4bKnashds8",
				RPort:     header.RPort{Present: true},
			},
		},
		{
			name: "rport with value and ipv6 received",
			in:   "SIP/2.0/UDP pc33.atlanta.com;branch=z9hG4bK1;rport=5066;received=2001:db8::1",
			want: &header.Via{
				Proto:     sip20,
				Transport: types.TransportProtoUDP,
				Addr:      uri.HostPort{Host: uri.DomainHost("pc33.atlanta.com")},
				Branch:    "z9hG4bK1",
				RPort:     header.RPort{Present: true, Port: 5066, HasPort: true},
				Received:  netip.MustParseAddr("2001:db8::1"),
			},
		},
		{
			name: "multicast",
			in:   "SIP/2.0/tcp first.example.com:4000;ttl=16;maddr=224.2.0.1;branch=z9hG4bKa7c6a8dlze.1",
			want: &header.Via{
				Proto:     sip20,
				Transport: types.TransportProtoTCP,
				Addr:      uri.NewHostPort(uri.DomainHost("first.example.com"), 4000),
				Branch:    "z9hG4bKa7c6a8dlze.1",
				TTL:       16,
				HasTTL:    true,
				MAddr:     "224.2.0.1",
			},
		},
		{
			name: "spaces, generic params and comment",
			in:   "SIP/2.0/UDP host.example.com ; branch=z9hG4bK1 ; x-foo=bar (proxy (v1) comment)",
			want: &header.Via{
				Proto:     sip20,
				Transport: types.TransportProtoUDP,
				Addr:      uri.HostPort{Host: uri.DomainHost("host.example.com")},
				Branch:    "z9hG4bK1",
				Params:    header.Params{{Name: "x-foo", Value: "bar"}},
				Comment:   "proxy (v1) comment",
			},
		},
		{
			name: "ipv6 sent-by",
			in:   "SIP/2.0/WSS [2001:db8::10]:443;branch=z9hG4bKws",
			want: &header.Via{
				Proto:     sip20,
				Transport: types.TransportProtoWSS,
				Addr:      uri.NewHostPort(uri.IPHost(netip.MustParseAddr("2001:db8::10")), 443),
				Branch:    "z9hG4bKws",
			},
		},
		{name: "foreign protocol", in: "FOO/9.9/UDP 192.0.2.1:5060;branch=z9hG4bK1", wantErr: scan.ErrUnexpectedByte},
		{name: "lowercase protocol", in: "sip/2.0/UDP 192.0.2.1:5060;branch=z9hG4bK1", wantErr: scan.ErrUnexpectedByte},
		{name: "spaces around slashes", in: "SIP / 2.0 / UDP a.com;branch=z9hG4bK1", wantErr: scan.ErrUnexpectedByte},
		{name: "other version", in: "SIP/2.1/UDP a.com;branch=z9hG4bK1", wantErr: scan.ErrUnexpectedByte},
		{name: "no space before sent-by", in: "SIP/2.0/UDP;branch=z9hG4bK1", wantErr: scan.ErrUnexpectedByte},
		{name: "missing transport", in: "SIP/2.0 pc33.atlanta.com", wantErr: scan.ErrUnexpectedByte},
		{name: "rport zero", in: "SIP/2.0/UDP a.com;rport=0", wantErr: scan.ErrInvalidNumber},
		{name: "rport out of range", in: "SIP/2.0/UDP a.com;rport=65536", wantErr: scan.ErrInvalidNumber},
		{name: "invalid received", in: "SIP/2.0/UDP a.com;received=foo", wantErr: scan.ErrInvalidHeader},
		{name: "ttl out of range", in: "SIP/2.0/UDP a.com;ttl=256", wantErr: scan.ErrInvalidNumber},
		{name: "quoted branch", in: "SIP/2.0/UDP a.com;branch=\"z9hG4bK1\"", wantErr: scan.ErrUnexpectedByte},
		{name: "bad ipv6", in: "SIP/2.0/UDP [::zz]", wantErr: scan.ErrUnexpectedByte},
		{name: "unterminated comment", in: "SIP/2.0/UDP a.com (oops", wantErr: scan.ErrUnexpectedEOF},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			hdr, err := header.Parse("Via: " + c.in)
			if diff := cmp.Diff(err, c.wantErr, cmpopts.EquateErrors()); diff != "" {
				t.Fatalf("header.Parse(%q) error = %v, want %v\ndiff (-got +want):\n%v", c.in, err, c.wantErr, diff)
			}
			if c.wantErr != nil {
				return
			}
			got, ok := hdr.(*header.Via)
			if !ok {
				t.Fatalf("header.Parse(%q) = %T, want *header.Via", c.in, hdr)
			}
			if diff := cmp.Diff(got, c.want, cmpOpts); diff != "" {
				t.Errorf("header.Parse(%q) = %+v, want %+v\ndiff (-got +want):\n%v", c.in, got, c.want, diff)
			}
		})
	}
}

func TestVia_Render(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		hdr  *header.Via
		opts *header.RenderOptions
		want string
	}{
		{"nil", nil, nil, ""},
		{
			"full",
			&header.Via{
				Proto:     sip20,
				Transport: types.TransportProtoTCP,
				Addr:      uri.NewHostPort(uri.DomainHost("first.example.com"), 4000),
				Branch:    "z9hG4bKa7c6a8dlze.1",
				TTL:       16,
				HasTTL:    true,
				MAddr:     "224.2.0.1",
				Received:  netip.MustParseAddr("192.0.2.207"),
				RPort:     header.RPort{Present: true, Port: 5060, HasPort: true},
				Params:    header.Params{{Name: "foo", Value: "bar baz", Quoted: true}},
				Comment:   "hop",
			},
			nil,
			"Via: SIP/2.0/TCP first.example.com:4000;branch=z9hG4bKa7c6a8dlze.1;ttl=16;maddr=224.2.0.1;" +
				"received=192.0.2.207;rport=5060;foo=\"bar baz\" (hop)",
		},
		{
			"compact with rport flag",
			&header.Via{
				Proto:     sip20,
				Transport: types.TransportProtoUDP,
				Addr:      uri.HostPort{Host: uri.IPHost(netip.MustParseAddr("2001:db8::1"))},
				Branch:    "z9hG4bK1",
				RPort:     header.RPort{Present: true},
			},
			&header.RenderOptions{Compact: true},
			"v: SIP/2.0/UDP [2001:db8::1];branch=z9hG4bK1;rport",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got := c.hdr.Render(c.opts); got != c.want {
				t.Errorf("hdr.Render(opts) = %q, want %q", got, c.want)
			}
		})
	}
}

func TestVia_Equal(t *testing.T) {
	t.Parallel()

	via := &header.Via{
		Proto:     sip20,
		Transport: types.TransportProtoUDP,
		Addr:      uri.HostPort{Host: uri.DomainHost("pc33.atlanta.com")},
		Branch:    "z9hG4bK776asdhds",
		MAddr:     "Example.COM",
	}

	cases := []struct {
		name string
		val  any
		want bool
	}{
		{"nil", nil, false},
		{"nil via", (*header.Via)(nil), false},
		{"other type", header.ContentLength(1), false},
		{"same", via, true},
		{"value", *via, true},
		{
			"case differences",
			&header.Via{
				Proto:     header.ProtoInfo{Name: "sip", Version: "2.0"},
				Transport: "udp",
				Addr:      uri.HostPort{Host: uri.DomainHost("PC33.atlanta.com")},
				Branch:    "z9hG4bK776asdhds",
				MAddr:     "example.com",
			},
			true,
		},
		{
			"branch differs in case",
			&header.Via{
				Proto:     sip20,
				Transport: types.TransportProtoUDP,
				Addr:      uri.HostPort{Host: uri.DomainHost("pc33.atlanta.com")},
				Branch:    "Z9HG4BK776ASDHDS",
				MAddr:     "Example.COM",
			},
			false,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got := via.Equal(c.val); got != c.want {
				t.Errorf("via.Equal(%v) = %v, want %v", c.val, got, c.want)
			}
		})
	}
}

func TestVia_IsValid(t *testing.T) {
	t.Parallel()

	valid := &header.Via{
		Proto:     sip20,
		Transport: types.TransportProtoUDP,
		Addr:      uri.HostPort{Host: uri.DomainHost("pc33.atlanta.com")},
		Branch:    "z9hG4bK776asdhds",
	}
	if !valid.IsValid() {
		t.Errorf("valid.IsValid() = false, want true")
	}
	if !valid.IsRFC3261() {
		t.Errorf("valid.IsRFC3261() = false, want true")
	}

	invalid := []*header.Via{
		nil,
		{},
		{Proto: sip20, Transport: "U D P", Addr: valid.Addr},
		{Proto: sip20, Transport: types.TransportProtoUDP, Addr: valid.Addr, Branch: "a b"},
	}
	for _, via := range invalid {
		if via.IsValid() {
			t.Errorf("%+v.IsValid() = true, want false", via)
		}
	}

	old := &header.Via{Proto: sip20, Transport: types.TransportProtoUDP, Addr: valid.Addr, Branch: "1234"}
	if old.IsRFC3261() {
		t.Errorf("old.IsRFC3261() = true, want false")
	}
}
