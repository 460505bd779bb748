package header_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/ghettovoice/sipmsg/header"
	"github.com/ghettovoice/sipmsg/internal/scan"
	"github.com/ghettovoice/sipmsg/internal/types"
	"github.com/ghettovoice/sipmsg/uri"
)

func TestFrom_Parse(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		in      string
		want    *header.From
		wantErr error
	}{
		{
			name: "addr-spec",
			in:   "From: sip:+12125551212@server.phone2net.com;tag=887s",
			want: &header.From{
				NameAddr: header.NameAddr{
					URI: &uri.SIP{
						User: uri.User("+12125551212"),
						Addr: uri.HostPort{Host: uri.DomainHost("server.phone2net.com")},
					},
				},
				Tag: "887s",
			},
		},
		{
			name: "token display name",
			in:   "f: Anonymous <sip:c8oqz84zk7z@privacy.org>;tag=hyh8",
			want: &header.From{
				NameAddr: header.NameAddr{
					DisplayName: "Anonymous",
					URI: &uri.SIP{
						User: uri.User("c8oqz84zk7z"),
						Addr: uri.HostPort{Host: uri.DomainHost("privacy.org")},
					},
					Angled: true,
				},
				Tag: "hyh8",
			},
		},
		{
			name: "uri params stay in uri",
			in:   "From: <sips:alice@atlanta.com;transport=tcp>;TAG=1928301774;foo",
			want: &header.From{
				NameAddr: header.NameAddr{
					URI: &uri.SIP{
						Secured:   true,
						User:      uri.User("alice"),
						Addr:      uri.HostPort{Host: uri.DomainHost("atlanta.com")},
						Transport: types.TransportProtoTCP,
					},
					Angled: true,
				},
				Tag:    "1928301774",
				Params: header.Params{{Name: "foo"}},
			},
		},
		{
			name: "no tag",
			in:   "From: <sip:alice@atlanta.com>",
			want: &header.From{
				NameAddr: header.NameAddr{
					URI: &uri.SIP{
						User: uri.User("alice"),
						Addr: uri.HostPort{Host: uri.DomainHost("atlanta.com")},
					},
					Angled: true,
				},
			},
		},
		{name: "unterminated display name", in: "From: \"Alice <sip:alice@atlanta.com>", wantErr: scan.ErrUnexpectedEOF},
		{name: "unterminated uri", in: "From: <sip:alice@atlanta.com", wantErr: scan.ErrUnexpectedEOF},
		{name: "display name without brackets", in: "From: Alice sip:alice@atlanta.com", wantErr: scan.ErrUnexpectedByte},
		{name: "quoted tag", in: "From: <sip:alice@atlanta.com>;tag=\"1\"", wantErr: scan.ErrUnexpectedByte},
		{name: "empty", in: "From: ", wantErr: scan.ErrUnexpectedEOF},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			hdr, err := header.Parse(c.in)
			if diff := cmp.Diff(err, c.wantErr, cmpopts.EquateErrors()); diff != "" {
				t.Fatalf("header.Parse(%q) error = %v, want %v\ndiff (-got +want):\n%v", c.in, err, c.wantErr, diff)
			}
			if c.wantErr != nil {
				return
			}
			if diff := cmp.Diff(hdr, header.Header(c.want), cmpOpts); diff != "" {
				t.Errorf("header.Parse(%q) = %+v, want %+v\ndiff (-got +want):\n%v", c.in, hdr, c.want, diff)
			}
		})
	}
}

func TestTo_Parse(t *testing.T) {
	t.Parallel()

	hdr, err := header.Parse("t: The Operator <sip:operator@cs.columbia.edu>;tag=287447")
	if err != nil {
		t.Fatalf("header.Parse() error = %v, want nil", err)
	}
	to, ok := hdr.(*header.To)
	if !ok {
		t.Fatalf("header.Parse() = %T, want *header.To", hdr)
	}
	if got, want := to.Display(), "The Operator"; got != want {
		t.Errorf("to.Display() = %q, want %q", got, want)
	}
	if got, want := to.URI.User.Username, "operator"; got != want {
		t.Errorf("to.URI.User.Username = %q, want %q", got, want)
	}
	if !to.HasTag() || to.Tag != "287447" {
		t.Errorf("to.Tag = %q, want %q", to.Tag, "287447")
	}
	if got, want := to.Render(nil), "To: \"The Operator\" <sip:operator@cs.columbia.edu>;tag=287447"; got != want {
		t.Errorf("to.Render(nil) = %q, want %q", got, want)
	}
}

func TestNameAddr_Display(t *testing.T) {
	t.Parallel()

	hdr, err := header.Parse(`From: "Bob \"the\" Builder \\ Jr." <sip:bob@biloxi.com>`)
	if err != nil {
		t.Fatalf("header.Parse() error = %v, want nil", err)
	}
	from := hdr.(*header.From)
	if got, want := from.DisplayName, `Bob \"the\" Builder \\ Jr.`; got != want {
		t.Errorf("from.DisplayName = %q, want %q", got, want)
	}
	if got, want := from.Display(), `Bob "the" Builder \ Jr.`; got != want {
		t.Errorf("from.Display() = %q, want %q", got, want)
	}
	if got, want := from.RenderValue(), `"Bob \"the\" Builder \\ Jr." <sip:bob@biloxi.com>`; got != want {
		t.Errorf("from.RenderValue() = %q, want %q", got, want)
	}
}

func TestFrom_Render(t *testing.T) {
	t.Parallel()

	alice := &uri.SIP{User: uri.User("alice"), Addr: uri.HostPort{Host: uri.DomainHost("atlanta.com")}}

	cases := []struct {
		name string
		hdr  *header.From
		opts *header.RenderOptions
		want string
	}{
		{"nil", nil, nil, ""},
		{"zero", &header.From{}, nil, "From: <>"},
		{
			"bare uri",
			&header.From{NameAddr: header.NameAddr{URI: alice}, Tag: "1"},
			nil,
			"From: sip:alice@atlanta.com;tag=1",
		},
		{
			"uri with params gets brackets",
			&header.From{
				NameAddr: header.NameAddr{
					URI: &uri.SIP{
						User:      uri.User("alice"),
						Addr:      uri.HostPort{Host: uri.DomainHost("atlanta.com")},
						Transport: types.TransportProtoTCP,
					},
				},
				Tag: "1",
			},
			nil,
			"From: <sip:alice@atlanta.com;transport=TCP>;tag=1",
		},
		{
			"display name",
			&header.From{
				NameAddr: header.NameAddr{DisplayName: "Alice", URI: alice},
				Tag:      "9fxced76sl",
				Params:   header.Params{{Name: "x", Value: "y"}},
			},
			&header.RenderOptions{Compact: true},
			"f: \"Alice\" <sip:alice@atlanta.com>;tag=9fxced76sl;x=y",
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

func TestFrom_Equal(t *testing.T) {
	t.Parallel()

	hdr1, err := header.Parse("From: \"Alice\" <sip:alice@atlanta.com>;tag=abc;foo=bar")
	if err != nil {
		t.Fatalf("header.Parse() error = %v, want nil", err)
	}

	cases := []struct {
		in   string
		want bool
	}{
		{"From: \"Alice\" <sip:alice@ATLANTA.COM>;FOO=bar;tag=abc", true},
		{"From: \"Alice\" <sip:alice@atlanta.com>;tag=ABC;foo=bar", false},
		{"From: \"alice\" <sip:alice@atlanta.com>;tag=abc;foo=bar", false},
		{"From: \"Alice\" <sip:alice@atlanta.com>;tag=abc", false},
		{"To: \"Alice\" <sip:alice@atlanta.com>;tag=abc;foo=bar", false},
	}

	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			t.Parallel()

			hdr2, err := header.Parse(c.in)
			if err != nil {
				t.Fatalf("header.Parse(%q) error = %v, want nil", c.in, err)
			}
			if got := hdr1.Equal(hdr2); got != c.want {
				t.Errorf("hdr1.Equal(%q) = %v, want %v", c.in, got, c.want)
			}
		})
	}
}

func TestFrom_IsValid(t *testing.T) {
	t.Parallel()

	alice := &uri.SIP{User: uri.User("alice"), Addr: uri.HostPort{Host: uri.DomainHost("atlanta.com")}}
	cases := []struct {
		name string
		hdr  header.Header
		want bool
	}{
		{"nil", (*header.From)(nil), false},
		{"zero", &header.From{}, false},
		{"valid", &header.From{NameAddr: header.NameAddr{URI: alice}, Tag: "a"}, true},
		{"bad tag", &header.From{NameAddr: header.NameAddr{URI: alice}, Tag: "a b"}, false},
		{"to valid", &header.To{NameAddr: header.NameAddr{URI: alice}}, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got := c.hdr.IsValid(); got != c.want {
				t.Errorf("hdr.IsValid() = %v, want %v", got, c.want)
			}
		})
	}
}
