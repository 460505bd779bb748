package scan_test

import (
	"errors"
	"fmt"
	"testing"

	"braces.dev/errtrace"
	"github.com/google/go-cmp/cmp"

	"github.com/ghettovoice/sipmsg/internal/scan"
)

func TestCursor_Unexpected(t *testing.T) {
	t.Parallel()

	c := scan.NewCursor("SIP/2.0 ;x")
	if _, err := c.ReadToken(); err != nil {
		t.Fatalf("c.ReadToken() error = %v, want nil", err)
	}
	err := c.Unexpected("token")
	want := &scan.Error{
		Kind:    scan.ErrUnexpectedByte,
		Pos:     scan.Pos{Offset: 3, Line: 1, Column: 4},
		Context: "SIP/2.0 ;x",
		Detail:  "expected token, got '/'",
	}
	if diff := cmp.Diff(err, want); diff != "" {
		t.Errorf("c.Unexpected() = %+v, want %+v\ndiff (-got +want):\n%v", err, want, diff)
	}
	if got, want := err.Error(), `parse at 1:4: unexpected byte: expected token, got '/' near "SIP/2.0 ;x"`; got != want {
		t.Errorf("err.Error() = %q, want %q", got, want)
	}

	c.Skip(10)
	err = c.Unexpected("CRLF")
	if !errors.Is(err, scan.ErrUnexpectedEOF) {
		t.Errorf("c.Unexpected() at EOF = %v, want %v", err, scan.ErrUnexpectedEOF)
	}
}

func TestCursor_ErrorContext(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		src  string
		off  int
		want string
	}{
		{"current line only", "line1\r\nab;cd\r\nnext", 9, "ab;cd"},
		{"first line", "Via: x\r\n", 3, "Via: x"},
		{"clipped", "0123456789012345678901234567890123456789012345678901234567890", 30, "678901234567890123456789012345678901234567890123"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			cur := scan.NewCursor(c.src)
			cur.Skip(c.off)
			if got := cur.Errorf(scan.ErrUnexpectedByte, "").Context; got != c.want {
				t.Errorf("Context = %q, want %q", got, c.want)
			}
		})
	}
}

func TestError_Error(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		err  *scan.Error
		want string
	}{
		{"nil", nil, "<nil>"},
		{"no kind", &scan.Error{Pos: scan.Pos{Line: 1, Column: 1}}, "parse at 1:1: syntax error"},
		{
			"full",
			&scan.Error{
				Kind:    scan.ErrInvalidNumber,
				Header:  "Content-Length",
				Pos:     scan.Pos{Offset: 18, Line: 3, Column: 19},
				Context: "Content-Length: 34x",
				Detail:  "unexpected 'x' after digits",
			},
			`parse Content-Length header at 3:19: invalid numeric value: unexpected 'x' after digits near "Content-Length: 34x"`,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got := c.err.Error(); got != c.want {
				t.Errorf("err.Error() = %q, want %q", got, c.want)
			}
		})
	}
}

func TestError_Helpers(t *testing.T) {
	t.Parallel()

	c := scan.NewCursor("x")
	perr := c.Errorf(scan.ErrMissingHeader, "%s header", "Call-ID")
	err := fmt.Errorf("parse message: %w", errtrace.Wrap(perr))

	got, ok := scan.AsError(err)
	if !ok || got != perr {
		t.Fatalf("scan.AsError() = %v, %v, want %v, true", got, ok, perr)
	}
	if got.Detail != "Call-ID header" {
		t.Errorf("Detail = %q, want %q", got.Detail, "Call-ID header")
	}
	if !got.Grammar() || got.Framing() || got.Semantic() {
		t.Errorf("default class = %v, want %v", got.Class, scan.ClassGrammar)
	}

	if scan.WithClass(err, scan.ClassSemantic) != err {
		t.Errorf("scan.WithClass() returned another error")
	}
	if !got.Semantic() {
		t.Errorf("class = %v, want %v", got.Class, scan.ClassSemantic)
	}

	scan.WithHeader(err, "Call-ID")
	scan.WithHeader(err, "CSeq")
	if got.Header != "Call-ID" {
		t.Errorf("Header = %q, want %q", got.Header, "Call-ID")
	}

	if !errors.Is(err, scan.ErrMissingHeader) {
		t.Errorf("errors.Is(err, ErrMissingHeader) = false, want true")
	}
	if _, ok := scan.AsError(errors.New("boom")); ok {
		t.Errorf("scan.AsError(plain) ok = true, want false")
	}
	if got := scan.WithClass(nil, scan.ClassFraming); got != nil {
		t.Errorf("scan.WithClass(nil) = %v, want nil", got)
	}

	for cls, want := range map[scan.ErrorClass]string{
		scan.ClassGrammar:  "grammar",
		scan.ClassFraming:  "framing",
		scan.ClassSemantic: "semantic",
		scan.ErrorClass(9): "unknown",
	} {
		if got := cls.String(); got != want {
			t.Errorf("ErrorClass(%d).String() = %q, want %q", cls, got, want)
		}
	}
}
