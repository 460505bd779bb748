package uri_test

import (
	"net/netip"
	"testing"

	"github.com/ghettovoice/sipmsg/internal/scan"
	"github.com/ghettovoice/sipmsg/uri"
)

func TestReadHostPort(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in       string
		want     uri.HostPort
		wantRest string
		wantErr  bool
	}{
		{"192.0.2.1:5060;branch=z9", uri.NewHostPort(uri.IPHost(netip.MustParseAddr("192.0.2.1")), 5060), ";branch=z9", false},
		{"pc33.atlanta.com ;x", uri.HostPort{Host: uri.DomainHost("pc33.atlanta.com")}, " ;x", false},
		{"[::1]>", uri.HostPort{Host: uri.IPHost(netip.MustParseAddr("::1"))}, ">", false},
		{"1.2.3", uri.HostPort{Host: uri.DomainHost("1.2.3")}, "", false},
		{"[1.2.3.4]", uri.HostPort{}, "", true},
		{":5060", uri.HostPort{}, "", true},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			t.Parallel()

			cur := scan.NewCursor(c.in)
			got, err := uri.ReadHostPort(cur)
			if (err != nil) != c.wantErr {
				t.Fatalf("uri.ReadHostPort(%q) error = %v, want error %v", c.in, err, c.wantErr)
			}
			if c.wantErr {
				return
			}
			if !got.Equal(c.want) {
				t.Errorf("uri.ReadHostPort(%q) = %v, want %v", c.in, got, c.want)
			}
			if rest := cur.Remaining(); rest != c.wantRest {
				t.Errorf("cur.Remaining() = %q, want %q", rest, c.wantRest)
			}
		})
	}
}

func TestHostPort_String(t *testing.T) {
	t.Parallel()

	cases := []struct {
		hp   uri.HostPort
		want string
	}{
		{uri.HostPort{Host: uri.DomainHost("atlanta.com")}, "atlanta.com"},
		{uri.NewHostPort(uri.DomainHost("atlanta.com"), 5060), "atlanta.com:5060"},
		{uri.NewHostPort(uri.IPHost(netip.MustParseAddr("2001:db8::1")), 5060), "[2001:db8::1]:5060"},
		{uri.HostPort{Host: uri.IPHost(netip.MustParseAddr("10.0.0.1"))}, "10.0.0.1"},
	}
	for _, c := range cases {
		t.Run(c.want, func(t *testing.T) {
			t.Parallel()

			if got := c.hp.String(); got != c.want {
				t.Errorf("hp.String() = %q, want %q", got, c.want)
			}
			hp, err := uri.ParseHostPort(c.want)
			if err != nil {
				t.Fatalf("uri.ParseHostPort(%q) error = %v", c.want, err)
			}
			if !hp.Equal(c.hp) {
				t.Errorf("uri.ParseHostPort(%q) = %v, want %v", c.want, hp, c.hp)
			}
		})
	}
}

func TestAny(t *testing.T) {
	t.Parallel()

	cur := scan.NewCursor("<http://wwww.example.com/alice/photo.jpg> ;purpose=icon")
	cur.Advance()
	u, err := uri.ReadAny(cur)
	if err != nil {
		t.Fatalf("uri.ReadAny() error = %v", err)
	}
	if u.Scheme != "http" || u.Opaque != "//wwww.example.com/alice/photo.jpg" {
		t.Errorf("uri.ReadAny() = %#v", u)
	}
	if rest := cur.Remaining(); rest != "> ;purpose=icon" {
		t.Errorf("cur.Remaining() = %q, want %q", rest, "> ;purpose=icon")
	}

	pu, err := u.URL()
	if err != nil {
		t.Fatalf("u.URL() error = %v", err)
	}
	if pu.Host != "wwww.example.com" {
		t.Errorf("u.URL().Host = %q, want %q", pu.Host, "wwww.example.com")
	}

	if !u.Equal(&uri.Any{Scheme: "HTTP", Opaque: u.Opaque}) {
		t.Error("schemes must be compared case-insensitively")
	}
	if _, err := uri.ParseAny("mailto:"); err == nil {
		t.Error("uri.ParseAny(\"mailto:\") error = nil, want error")
	}
}
