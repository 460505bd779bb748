package sip_test

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"go.uber.org/mock/gomock"

	"github.com/ghettovoice/sipmsg/internal/testutil/iomock"
	"github.com/ghettovoice/sipmsg/sip"
)

type streamResult struct {
	msgs []sip.Message
	err  error
}

func collect(p *sip.StreamParser) streamResult {
	var res streamResult
	for msg, err := range p.Messages() {
		if err != nil {
			res.err = err
			break
		}
		res.msgs = append(res.msgs, msg)
	}
	return res
}

var (
	streamOptions = crlf(
		"OPTIONS sip:bob@biloxi.com SIP/2.0",
		"To: <sip:bob@biloxi.com>",
		"From: <sip:alice@atlanta.com>;tag=1",
		"Call-ID: a84b4c76e66710",
		"CSeq: 1 OPTIONS",
		"Content-Length: 0",
		"",
	)
	streamOK = crlf(
		"SIP/2.0 200 OK",
		"Call-ID: a84b4c76e66710",
		"CSeq: 1 OPTIONS",
		"Content-Type: text/plain",
		"Content-Length: 5",
		"",
	) + "hello"
)

func TestStreamParser_Messages(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		in         string
		wantMsgs   []string
		wantBodies []string
		wantErr    error
	}{
		{name: "empty stream", in: ""},
		{name: "keep-alives only", in: "\r\n\r\n\r\n"},
		{
			name:       "two messages",
			in:         streamOptions + streamOK,
			wantMsgs:   []string{streamOptions, streamOK},
			wantBodies: []string{"", "hello"},
		},
		{
			name:       "keep-alives between messages",
			in:         "\r\n\r\n" + streamOK + "\r\n\r\n" + streamOptions + "\r\n",
			wantMsgs:   []string{streamOK, streamOptions},
			wantBodies: []string{"hello", ""},
		},
		{
			name: "body without content type",
			in: crlf(
				"SIP/2.0 200 OK",
				"Content-Length: 3",
				"",
			) + "abc" + streamOptions,
			wantMsgs: []string{
				crlf("SIP/2.0 200 OK", "Content-Length: 3", ""),
				streamOptions,
			},
			wantBodies: []string{"", ""},
		},
		{
			name:    "missing content length",
			in:      crlf("SIP/2.0 200 OK", "Call-ID: abc", ""),
			wantErr: sip.ErrMissingHeader,
		},
		{
			name:    "truncated head",
			in:      "SIP/2.0 200 OK\r\nCall-ID: abc\r\n",
			wantErr: io.ErrUnexpectedEOF,
		},
		{
			name:    "truncated body",
			in:      crlf("SIP/2.0 200 OK", "Content-Type: text/plain", "Content-Length: 10", "") + "hello",
			wantErr: io.ErrUnexpectedEOF,
		},
		{
			name:       "error after valid message",
			in:         streamOptions + "FOO\r\n\r\n",
			wantMsgs:   []string{streamOptions},
			wantBodies: []string{""},
			wantErr:    sip.ErrInvalidStartLine,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			res := collect(sip.ParseStream(strings.NewReader(c.in), nil))
			if diff := cmp.Diff(res.err, c.wantErr, cmpopts.EquateErrors()); diff != "" {
				t.Fatalf("Messages() error = %v, want %v\ndiff (-got +want):\n%v", res.err, c.wantErr, diff)
			}
			if len(res.msgs) != len(c.wantMsgs) {
				t.Fatalf("Messages() yielded %d messages, want %d", len(res.msgs), len(c.wantMsgs))
			}
			for i, msg := range res.msgs {
				want, err := sip.ParsePacket([]byte(c.wantMsgs[i]))
				if err != nil {
					t.Fatalf("sip.ParsePacket(%q) error = %v, want nil", c.wantMsgs[i], err)
				}
				if !msg.Equal(want) {
					t.Errorf("message #%d = %+s, want %+s", i, msg, want)
				}
				if got := msg.MessageBody(); got != c.wantBodies[i] {
					t.Errorf("message #%d body = %q, want %q", i, got, c.wantBodies[i])
				}
			}
		})
	}
}

func TestStreamParser_SmallReads(t *testing.T) {
	t.Parallel()

	in := streamOK + "\r\n" + streamOptions
	res := collect(sip.ParseStream(&oneByteReader{s: in}, nil))
	if res.err != nil {
		t.Fatalf("Messages() error = %v, want nil", res.err)
	}
	if len(res.msgs) != 2 {
		t.Fatalf("Messages() yielded %d messages, want 2", len(res.msgs))
	}
	res0, ok := res.msgs[0].(*sip.Response)
	if !ok {
		t.Fatalf("message #0 = %T, want *sip.Response", res.msgs[0])
	}
	if res0.Status != sip.ResponseStatusOK || res0.Body != "hello" {
		t.Errorf("message #0 = %+s, want 200 OK with body \"hello\"", res0)
	}
	if _, ok := res.msgs[1].(*sip.Request); !ok {
		t.Errorf("message #1 = %T, want *sip.Request", res.msgs[1])
	}
}

func TestStreamParser_ReaderError(t *testing.T) {
	t.Parallel()

	errConn := errors.New("connection reset")

	ctrl := gomock.NewController(t)
	rdr := iomock.NewMockReader(ctrl)
	gomock.InOrder(
		rdr.EXPECT().Read(gomock.Any()).DoAndReturn(func(p []byte) (int, error) {
			return copy(p, streamOptions), nil
		}),
		rdr.EXPECT().Read(gomock.Any()).Return(0, errConn),
	)

	res := collect(sip.ParseStream(rdr, nil))
	if !errors.Is(res.err, errConn) {
		t.Errorf("Messages() error = %v, want %v", res.err, errConn)
	}
	if len(res.msgs) != 1 {
		t.Errorf("Messages() yielded %d messages, want 1", len(res.msgs))
	}
}

func TestStreamParser_StopEarly(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	rdr := iomock.NewMockReader(ctrl)
	rdr.EXPECT().Read(gomock.Any()).DoAndReturn(func(p []byte) (int, error) {
		return copy(p, streamOptions+streamOptions), nil
	}).Times(1)

	var n int
	for msg, err := range sip.ParseStream(rdr, nil).Messages() {
		if err != nil {
			t.Fatalf("Messages() error = %v, want nil", err)
		}
		if msg == nil {
			t.Fatalf("Messages() yielded nil message")
		}
		n++
		break
	}
	if n != 1 {
		t.Errorf("Messages() yielded %d messages, want 1", n)
	}
}

type oneByteReader struct {
	s string
}

func (r *oneByteReader) Read(p []byte) (int, error) {
	if r.s == "" {
		return 0, io.EOF
	}
	if len(p) == 0 {
		return 0, nil
	}
	p[0] = r.s[0]
	r.s = r.s[1:]
	return 1, nil
}
