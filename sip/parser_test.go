package sip_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/ghettovoice/sipmsg/header"
	"github.com/ghettovoice/sipmsg/internal/scan"
	"github.com/ghettovoice/sipmsg/internal/types"
	"github.com/ghettovoice/sipmsg/sip"
	"github.com/ghettovoice/sipmsg/uri"
)

const sdp = "v=0\r\n" +
	"o=alice 2890844526 2890844526 IN IP4 pc33.atlanta.com\r\n" +
	"s=-\r\n"

var inviteHdrs = []string{
	"Via: SIP/2.0/UDP pc33.atlanta.com;branch=z9hG4bK776asdhds",
	"Max-Forwards: 70",
	"To: Bob <sip:bob@biloxi.com>",
	"From: Alice <sip:alice@atlanta.com>;tag=1928301774",
	"Call-ID: a84b4c76e66710@pc33.atlanta.com",
	"CSeq: 314159 INVITE",
	"Contact: <sip:alice@pc33.atlanta.com>",
	"Content-Type: application/sdp",
	"Content-Length: 65",
}

var ringingHdrs = []string{
	"Via: SIP/2.0/UDP pc33.atlanta.com;branch=z9hG4bK776asdhds;received=192.0.2.1",
	"To: Bob <sip:bob@biloxi.com>;tag=a6c85cf",
	"From: Alice <sip:alice@atlanta.com>;tag=1928301774",
	"Call-ID: a84b4c76e66710@pc33.atlanta.com",
	"CSeq: 314159 INVITE",
	"Content-Length: 0",
}

// minHdrs is the smallest set of headers a request must carry.
var minHdrs = []string{
	"To: <sip:bob@biloxi.com>",
	"From: <sip:alice@atlanta.com>;tag=1",
	"Call-ID: a84b4c76e66710",
	"CSeq: 1 OPTIONS",
}

func buildHdrs(t *testing.T, lines []string) sip.Headers {
	t.Helper()
	hdrs := make(sip.Headers, 0, len(lines))
	for _, l := range lines {
		hdrs.Append(mustParseHdr(t, l))
	}
	return hdrs
}

func mandatory(hdrs sip.Headers) sip.MandatoryHeaders {
	var m sip.MandatoryHeaders
	m.Via, _ = hdrs.FirstVia()
	m.From, _ = hdrs.From()
	m.To, _ = hdrs.To()
	m.CallID, _ = hdrs.CallID()
	m.CSeq, _ = hdrs.CSeq()
	return m
}

func newRequest(t *testing.T, mtd sip.RequestMethod, target string, lines []string, body string) *sip.Request {
	t.Helper()
	u, err := uri.ParseSIP(target)
	if err != nil {
		t.Fatalf("uri.ParseSIP(%q) error = %v, want nil", target, err)
	}
	hdrs := buildHdrs(t, lines)
	return &sip.Request{
		RequestLine: sip.RequestLine{Method: mtd, URI: u},
		Headers:     hdrs,
		Body:        body,
		Mandatory:   mandatory(hdrs),
	}
}

func TestParsePacket(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		in      string
		want    func(t *testing.T) sip.Message
		wantErr error
	}{
		{
			name: "invite with body",
			in:   "INVITE sip:bob@biloxi.com SIP/2.0\r\n" + crlf(inviteHdrs...) + "\r\n" + sdp,
			want: func(t *testing.T) sip.Message {
				return newRequest(t, sip.RequestMethodInvite, "sip:bob@biloxi.com", inviteHdrs, sdp)
			},
		},
		{
			name: "extension method and unknown header",
			in:   "FOO sip:bob@biloxi.com;transport=tcp SIP/2.0\r\n" + crlf(minHdrs...) + "X-Custom: hello\r\n\r\n",
			want: func(t *testing.T) sip.Message {
				return newRequest(t, "FOO", "sip:bob@biloxi.com;transport=tcp", append(minHdrs[:len(minHdrs):len(minHdrs)], "X-Custom: hello"), "")
			},
		},
		{
			name: "body without content type is ignored",
			in:   "OPTIONS sip:bob@biloxi.com SIP/2.0\r\n" + crlf(minHdrs...) + "\r\nhello",
			want: func(t *testing.T) sip.Message {
				return newRequest(t, sip.RequestMethodOptions, "sip:bob@biloxi.com", minHdrs, "")
			},
		},
		{
			name: "response",
			in:   "SIP/2.0 180 Ringing\r\n" + crlf(ringingHdrs...) + "\r\n",
			want: func(t *testing.T) sip.Message {
				return &sip.Response{
					StatusLine: sip.StatusLine{Status: sip.ResponseStatusRinging, Reason: "Ringing"},
					Headers:    buildHdrs(t, ringingHdrs),
				}
			},
		},
		{
			name: "response without reason",
			in:   "SIP/2.0 200\r\n\r\n",
			want: func(*testing.T) sip.Message {
				return &sip.Response{StatusLine: sip.StatusLine{Status: sip.ResponseStatusOK}}
			},
		},
		{
			name: "response with unknown status",
			in:   "SIP/2.0 499 Custom  Reason \r\nX-Foo: bar\r\n\r\n",
			want: func(t *testing.T) sip.Message {
				return &sip.Response{
					StatusLine: sip.StatusLine{Status: 499, Reason: "Custom  Reason"},
					Headers:    buildHdrs(t, []string{"X-Foo: bar"}),
				}
			},
		},
		{name: "empty", in: "", wantErr: sip.ErrInvalidStartLine},
		{name: "unsupported version", in: "INVITE sip:bob@biloxi.com SIP/3.0\r\n\r\n", wantErr: sip.ErrInvalidStartLine},
		{name: "lowercase version", in: "INVITE sip:bob@biloxi.com sip/2.0\r\n\r\n", wantErr: sip.ErrInvalidStartLine},
		{name: "lowercase status line", in: "sip/2.0 200 OK\r\n\r\n", wantErr: sip.ErrInvalidStartLine},
		{name: "missing version", in: "INVITE sip:bob@biloxi.com\r\n\r\n", wantErr: sip.ErrInvalidStartLine},
		{name: "lf line ending", in: "INVITE sip:bob@biloxi.com SIP/2.0\n\n", wantErr: sip.ErrInvalidStartLine},
		{name: "tel request uri", in: "INVITE tel:+12125551212 SIP/2.0\r\n\r\n", wantErr: sip.ErrUnsupportedScheme},
		{name: "short status code", in: "SIP/2.0 20 OK\r\n\r\n", wantErr: sip.ErrInvalidStartLine},
		{name: "status code out of range", in: "SIP/2.0 700 Foo\r\n\r\n", wantErr: sip.ErrInvalidStartLine},
		{name: "status line without crlf", in: "SIP/2.0 200 OK", wantErr: sip.ErrInvalidStartLine},
		{name: "missing blank line", in: "SIP/2.0 200 OK\r\n", wantErr: sip.ErrUnexpectedEOF},
		{name: "header without colon", in: "SIP/2.0 200 OK\r\nFoo\r\n\r\n", wantErr: sip.ErrUnexpectedByte},
		{name: "folded header", in: "SIP/2.0 200 OK\r\nSubject: a\r\n b\r\n\r\n", wantErr: sip.ErrUnexpectedByte},
		{name: "bad content length", in: "SIP/2.0 200 OK\r\nContent-Length: x\r\n\r\n", wantErr: sip.ErrInvalidNumber},
		{
			name:    "missing to",
			in:      "OPTIONS sip:bob@biloxi.com SIP/2.0\r\n" + crlf(minHdrs[1:]...) + "\r\n",
			wantErr: sip.ErrMissingHeader,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			got, err := sip.ParsePacket([]byte(c.in))
			if diff := cmp.Diff(err, c.wantErr, cmpopts.EquateErrors()); diff != "" {
				t.Fatalf("sip.ParsePacket(%q) error = %v, want %v\ndiff (-got +want):\n%v", c.in, err, c.wantErr, diff)
			}
			if c.want == nil {
				if got != nil {
					t.Errorf("sip.ParsePacket(%q) = %v, want nil", c.in, got)
				}
				return
			}
			want := c.want(t)
			if diff := cmp.Diff(got, want, cmpOpts); diff != "" {
				t.Errorf("sip.ParsePacket(%q) = %+v, want %+v\ndiff (-got +want):\n%v", c.in, got, want, diff)
			}
			if !got.Equal(want) {
				t.Errorf("msg.Equal(want) = false, want true")
			}
		})
	}
}

func TestParsePacket_ErrorDetails(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		in      string
		wantErr error
		want    sip.ParseError
		wantPos *scan.Pos
	}{
		{
			name:    "start line",
			in:      "INVITE sip:bob@biloxi.com SIP/2.1\r\n\r\n",
			wantErr: sip.ErrInvalidStartLine,
			want:    sip.ParseError{Class: sip.ClassFraming},
			wantPos: &scan.Pos{Offset: 26, Line: 1, Column: 27},
		},
		{
			name:    "request uri",
			in:      "INVITE tel:+12125551212 SIP/2.0\r\n\r\n",
			wantErr: sip.ErrUnsupportedScheme,
			want:    sip.ParseError{Class: sip.ClassFraming},
		},
		{
			name:    "missing header",
			in:      "OPTIONS sip:bob@biloxi.com SIP/2.0\r\n" + crlf(minHdrs[:3]...) + "\r\n",
			wantErr: sip.ErrMissingHeader,
			want:    sip.ParseError{Class: sip.ClassSemantic, Header: "CSeq"},
		},
		{
			name:    "header grammar",
			in:      "SIP/2.0 200 OK\r\nCSeq: 1 INVITE x\r\n\r\n",
			wantErr: sip.ErrUnexpectedByte,
			want:    sip.ParseError{Class: sip.ClassGrammar, Header: "CSeq"},
		},
		{
			name:    "compact header name",
			in:      "SIP/2.0 200 OK\r\nl: 1x\r\n\r\n",
			wantErr: sip.ErrInvalidNumber,
			want:    sip.ParseError{Class: sip.ClassGrammar, Header: "Content-Length"},
		},
		{
			name:    "truncated header line",
			in:      "SIP/2.0 200 OK\r\nCall-ID: a@b",
			wantErr: sip.ErrUnexpectedEOF,
			want:    sip.ParseError{Class: sip.ClassFraming, Header: "Call-ID"},
		},
		{
			name:    "line folding",
			in:      "SIP/2.0 200 OK\r\nSubject: a\r\n\tb\r\n\r\n",
			wantErr: sip.ErrUnexpectedByte,
			want:    sip.ParseError{Class: sip.ClassFraming},
			wantPos: &scan.Pos{Offset: 28, Line: 3, Column: 1},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			_, err := sip.ParsePacket([]byte(c.in))
			if !errors.Is(err, c.wantErr) {
				t.Fatalf("sip.ParsePacket(%q) error = %v, want %v", c.in, err, c.wantErr)
			}
			var perr *sip.ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("sip.ParsePacket(%q) error = %T, want *sip.ParseError", c.in, err)
			}
			if perr.Class != c.want.Class {
				t.Errorf("Class = %v, want %v", perr.Class, c.want.Class)
			}
			if perr.Header != c.want.Header {
				t.Errorf("Header = %q, want %q", perr.Header, c.want.Header)
			}
			if c.wantPos != nil && perr.Pos != *c.wantPos {
				t.Errorf("Pos = %+v, want %+v", perr.Pos, *c.wantPos)
			}
		})
	}

	_, err := sip.ParsePacket([]byte("OPTIONS sip:bob@biloxi.com SIP/2.0\r\n\r\n"))
	if !sip.IsSemanticErr(err) || sip.IsGrammarErr(err) || sip.IsFramingErr(err) {
		t.Errorf("sip.IsSemanticErr(%v) = false, want true", err)
	}
}

// The Via, From, Contact, Accept and Content-Length values are the examples of RFC 3261.
func TestParsePacket_HeaderExamples(t *testing.T) {
	t.Parallel()

	in := crlf(
		"INVITE sip:watson@[2001:db8::1]:5060 SIP/2.0",
		"Via: SIP/2.0/UDP 192.0.2.1:5060;received=192.0.2.207;branch=z9hG4bK77asjd",
		"From: \"A. G. Bell\" <sip:agb@bell-telephone.com> ;tag=a48s",
		"To: <sip:watson@[2001:db8::1]>",
		"Call-ID: f81d4fae-7dec-11d0-a765-00a0c91e6bf6@foo.bar.com",
		"CSeq: 4711 INVITE",
		"Contact: *",
		"Accept: application/sdp;level=1, application/x-private, text/html",
		"X-Custom: hello",
		"Content-Length: 349",
		"",
	)
	msg, err := sip.ParsePacket([]byte(in))
	if err != nil {
		t.Fatalf("sip.ParsePacket() error = %v, want nil", err)
	}
	req, ok := msg.(*sip.Request)
	if !ok {
		t.Fatalf("sip.ParsePacket() = %T, want *sip.Request", msg)
	}

	if ip := req.URI.Addr.Host.IP; !ip.Is6() || ip.String() != "2001:db8::1" {
		t.Errorf("req.URI.Addr.Host.IP = %v, want IPv6 2001:db8::1", ip)
	}
	if !req.URI.Addr.HasPort || req.URI.Addr.Port != 5060 {
		t.Errorf("req.URI.Addr = %v, want port 5060", req.URI.Addr)
	}

	via := req.Mandatory.Via
	if via == nil {
		t.Fatalf("req.Mandatory.Via = nil, want Via")
	}
	if via.Transport != types.TransportProtoUDP || via.Addr.Host.IP.String() != "192.0.2.1" ||
		via.Received.String() != "192.0.2.207" || via.Branch != "z9hG4bK77asjd" {
		t.Errorf("Via = %+v, want UDP 192.0.2.1:5060 received=192.0.2.207 branch=z9hG4bK77asjd", via)
	}
	if !via.Addr.HasPort || via.Addr.Port != 5060 {
		t.Errorf("via.Addr = %v, want port 5060", via.Addr)
	}

	from := req.Mandatory.From
	if from == nil {
		t.Fatalf("req.Mandatory.From = nil, want From")
	}
	if from.Display() != "A. G. Bell" || from.URI.User.Username != "agb" ||
		from.URI.Addr.Host.Name != "bell-telephone.com" || from.Tag != "a48s" {
		t.Errorf("From = %+v, want \"A. G. Bell\" agb@bell-telephone.com tag=a48s", from)
	}

	if want := (&header.CSeq{SeqNum: 4711, Method: sip.RequestMethodInvite}); !req.Mandatory.CSeq.Equal(want) {
		t.Errorf("req.Mandatory.CSeq = %v, want %v", req.Mandatory.CSeq, want)
	}
	if got, _ := req.Headers.ContentLength(); got != 349 {
		t.Errorf("req.Headers.ContentLength() = %v, want 349", got)
	}
	if ct, ok := sip.First[*header.Contact](req.Headers); !ok || !ct.Wildcard {
		t.Errorf("Contact = %v, want wildcard", ct)
	}

	acc, ok := sip.First[header.Accept](req.Headers)
	if !ok || len(acc) != 3 {
		t.Fatalf("Accept = %v, want 3 entries", acc)
	}
	if lvl, ok := acc[0].Params.Get("level"); !ok || lvl != "1" {
		t.Errorf("Accept[0] level = %q, %v, want \"1\", true", lvl, ok)
	}

	other, ok := sip.First[*header.Other](req.Headers)
	if !ok {
		t.Fatalf("sip.First[*header.Other]() ok = false, want true")
	}
	if diff := cmp.Diff(other, &header.Other{Name: "X-Custom", Value: "hello"}); diff != "" {
		t.Errorf("Other = %+v, want X-Custom: hello\ndiff (-got +want):\n%v", other, diff)
	}
	if got := req.Headers.Get("x-custom"); len(got) != 1 || got[0] != header.Header(other) {
		t.Errorf("req.Headers.Get(\"x-custom\") = %v, want [%v]", got, other)
	}
}

func TestParseMessage_Options(t *testing.T) {
	t.Parallel()

	in := []byte("INVITE sip:bob@biloxi.com SIP/2.0\r\n" + crlf(inviteHdrs...) + "\r\n" + sdp)

	copied, err := sip.ParseMessage(in, nil)
	if err != nil {
		t.Fatalf("sip.ParseMessage(nil opts) error = %v, want nil", err)
	}
	again, err := sip.ParsePacket(in)
	if err != nil {
		t.Fatalf("sip.ParsePacket() error = %v, want nil", err)
	}
	if diff := cmp.Diff(copied, again, cmpOpts); diff != "" {
		t.Errorf("parsing twice gives different results\ndiff (-first +second):\n%v", diff)
	}

	viewed, err := sip.ParseMessage(in, &sip.ParseOptions{NoCopy: true})
	if err != nil {
		t.Fatalf("sip.ParseMessage(NoCopy) error = %v, want nil", err)
	}
	if !viewed.Equal(copied) {
		t.Errorf("NoCopy result = %+s, want %+s", viewed, copied)
	}

	// the default mode owns its copy of the input
	clear(in)
	if got := copied.MessageBody(); got != sdp {
		t.Errorf("body after input reset = %q, want %q", got, sdp)
	}

	_, err = sip.ParseMessage([]byte("SIP/2.0 200 OK\r\nX-A: 1\r\nX-B: 2\r\nX-C: 3\r\n\r\n"), &sip.ParseOptions{MaxHeaders: 2})
	if !errors.Is(err, sip.ErrTooManyHeaders) || !sip.IsFramingErr(err) {
		t.Errorf("sip.ParseMessage(MaxHeaders: 2) error = %v, want %v", err, sip.ErrTooManyHeaders)
	}
	if _, err := sip.ParseMessage([]byte("SIP/2.0 200 OK\r\nX-A: 1\r\nX-B: 2\r\nX-C: 3\r\n\r\n"), &sip.ParseOptions{MaxHeaders: -1}); err != nil {
		t.Errorf("sip.ParseMessage(MaxHeaders: -1) error = %v, want nil", err)
	}
}
