package scan_test

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/ghettovoice/sipmsg/internal/scan"
)

func TestCursor_Pos(t *testing.T) {
	t.Parallel()

	c := scan.NewCursor("a\r\nbc\r\n\r\nd")
	steps := []struct {
		name string
		step func()
		want scan.Pos
	}{
		{"start", func() {}, scan.Pos{Offset: 0, Line: 1, Column: 1}},
		{"advance", func() { c.Advance() }, scan.Pos{Offset: 1, Line: 1, Column: 2}},
		{"skip crlf", func() { c.Skip(2) }, scan.Pos{Offset: 3, Line: 2, Column: 1}},
		{"read while", func() { c.ReadWhile(scan.Alpha) }, scan.Pos{Offset: 5, Line: 2, Column: 3}},
		{"skip two lines", func() { c.Skip(4) }, scan.Pos{Offset: 9, Line: 4, Column: 1}},
		{"skip past end", func() { c.Skip(10) }, scan.Pos{Offset: 10, Line: 4, Column: 2}},
	}
	for _, s := range steps {
		s.step()
		if diff := cmp.Diff(c.Pos(), s.want); diff != "" {
			t.Errorf("%s: c.Pos() = %+v, want %+v\ndiff (-got +want):\n%v", s.name, c.Pos(), s.want, diff)
		}
	}
	if !c.EOF() {
		t.Errorf("c.EOF() = false, want true")
	}
	if b, ok := c.Advance(); ok {
		t.Errorf("c.Advance() at EOF = %q, true, want false", b)
	}
}

func TestCursor_MarkRewind(t *testing.T) {
	t.Parallel()

	c := scan.NewCursor("INVITE sip:bob@biloxi.com SIP/2.0")
	m := c.Mark()
	if tok, err := c.ReadToken(); err != nil || tok != "INVITE" {
		t.Fatalf("c.ReadToken() = %q, %v, want %q, nil", tok, err, "INVITE")
	}
	if !c.Is(' ') {
		t.Errorf("c.Is(' ') = false, want true")
	}
	c.Rewind(m)
	if got := c.Pos(); got != (scan.Pos{Line: 1, Column: 1}) {
		t.Errorf("c.Pos() after rewind = %+v, want start", got)
	}
	if err := c.ExpectLiteral("invite "); !cmp.Equal(err, scan.ErrUnexpectedByte, cmpopts.EquateErrors()) {
		t.Errorf("c.ExpectLiteral(\"invite \") error = %v, want %v", err, scan.ErrUnexpectedByte)
	}
	if err := c.ExpectLiteral("INVITE "); err != nil {
		t.Errorf("c.ExpectLiteral(\"INVITE \") error = %v, want nil", err)
	}
	if s, ok := c.ReadUntil('@'); !ok || s != "sip:bob" {
		t.Errorf("c.ReadUntil('@') = %q, %v, want %q, true", s, ok, "sip:bob")
	}
	if _, ok := c.ReadUntil('#'); ok {
		t.Errorf("c.ReadUntil('#') ok = true, want false")
	}
	if s, ok := c.PeekN(4); !ok || s != "@bil" {
		t.Errorf("c.PeekN(4) = %q, %v, want %q, true", s, ok, "@bil")
	}
	if b, ok := c.PeekAt(1); !ok || b != 'b' {
		t.Errorf("c.PeekAt(1) = %q, %v, want 'b', true", b, ok)
	}
	if err := c.ExpectLiteral("@biloxi.com "); err != nil {
		t.Errorf("c.ExpectLiteral() error = %v, want nil", err)
	}
	if err := c.ExpectLiteral("sip/2.0"); !cmp.Equal(err, scan.ErrUnexpectedByte, cmpopts.EquateErrors()) {
		t.Errorf("c.ExpectLiteral(\"sip/2.0\") error = %v, want %v", err, scan.ErrUnexpectedByte)
	}
	if got, want := c.Remaining(), "SIP/2.0"; got != want {
		t.Errorf("c.Remaining() = %q, want %q", got, want)
	}
}

func TestCursor_Read(t *testing.T) {
	t.Parallel()

	type result struct {
		Val  string
		Rest string
	}

	cases := []struct {
		name    string
		in      string
		read    func(c *scan.Cursor) (string, error)
		want    result
		wantErr error
	}{
		{"token", "Via: x", (*scan.Cursor).ReadToken, result{"Via", ": x"}, nil},
		{"no token", ":x", (*scan.Cursor).ReadToken, result{"", ":x"}, scan.ErrUnexpectedByte},
		{"digits", "0123;x", (*scan.Cursor).ReadDigits, result{"0123", ";x"}, nil},
		{"no digits", "x", (*scan.Cursor).ReadDigits, result{"", "x"}, scan.ErrInvalidNumber},
		{"uint", "65535 ", readUint16, result{"65535", " "}, nil},
		{"uint overflow", "65536 ", readUint16, result{"", "65536 "}, scan.ErrInvalidNumber},
		{"quoted", `"a \"b\" c" rest`, (*scan.Cursor).ReadQuoted, result{`a \"b\" c`, " rest"}, nil},
		{"quoted utf8", `"Привет"`, (*scan.Cursor).ReadQuoted, result{"Привет", ""}, nil},
		{"unterminated quoted", `"abc`, (*scan.Cursor).ReadQuoted, result{"", ""}, scan.ErrUnexpectedEOF},
		{"quoted at line end", "\"ab\r\n\"", (*scan.Cursor).ReadQuoted, result{"", "\r\n\""}, scan.ErrUnexpectedByte},
		{"quoted escape at end", `"ab\`, (*scan.Cursor).ReadQuoted, result{"", ""}, scan.ErrUnexpectedEOF},
		{"quoted invalid utf8", "\"\xff\"", (*scan.Cursor).ReadQuoted, result{"", ""}, scan.ErrInvalidUTF8},
		{"comment", `(a (b) \) c) x`, (*scan.Cursor).ReadComment, result{`a (b) \) c`, " x"}, nil},
		{"unbalanced comment", "(a (b)", (*scan.Cursor).ReadComment, result{"", ""}, scan.ErrUnexpectedEOF},
		{"text", "hello world  \r\nnext", (*scan.Cursor).ReadText, result{"hello world", "\r\nnext"}, nil},
		{"invalid text", "ab\xc3\x28", (*scan.Cursor).ReadText, result{"", "ab\xc3\x28"}, scan.ErrInvalidUTF8},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			cur := scan.NewCursor(c.in)
			val, err := c.read(cur)
			if diff := cmp.Diff(err, c.wantErr, cmpopts.EquateErrors()); diff != "" {
				t.Errorf("read(%q) error = %v, want %v\ndiff (-got +want):\n%v", c.in, err, c.wantErr, diff)
			}
			got := result{val, cur.Remaining()}
			if diff := cmp.Diff(got, c.want); diff != "" {
				t.Errorf("read(%q) = %+v, want %+v\ndiff (-got +want):\n%v", c.in, got, c.want, diff)
			}
		})
	}
}

func readUint16(c *scan.Cursor) (string, error) {
	n, err := c.ReadUint(16)
	if err != nil {
		return "", err
	}
	return fmt.Sprint(n), nil
}

func TestCursor_SkipSpaceAtEOL(t *testing.T) {
	t.Parallel()

	c := scan.NewCursor(" \t x\r\n")
	if got := c.SkipSpace(); got != 3 {
		t.Errorf("c.SkipSpace() = %v, want 3", got)
	}
	if c.AtEOL() {
		t.Errorf("c.AtEOL() = true, want false")
	}
	c.Advance()
	if !c.AtEOL() {
		t.Errorf("c.AtEOL() = false, want true")
	}
	if err := c.ExpectCRLF(); err != nil {
		t.Errorf("c.ExpectCRLF() error = %v, want nil", err)
	}
	if !c.AtEOL() || !c.EOF() {
		t.Errorf("c.AtEOL(), c.EOF() = %v, %v, want true, true", c.AtEOL(), c.EOF())
	}
	if err := c.ExpectCRLF(); !cmp.Equal(err, scan.ErrUnexpectedEOF, cmpopts.EquateErrors()) {
		t.Errorf("c.ExpectCRLF() at EOF error = %v, want %v", err, scan.ErrUnexpectedEOF)
	}
}

func TestIsAll(t *testing.T) {
	t.Parallel()

	cases := []struct {
		s    string
		cls  scan.Class
		want bool
	}{
		{"", scan.Token, false},
		{"INVITE", scan.Token, true},
		{"a-b.c!%*_+`'~", scan.Token, true},
		{"a b", scan.Token, false},
		{"a/b", scan.Token, false},
		{"f81d4fae-7dec@foo.bar.com", scan.Word, false},
		{"f81d4fae-7dec", scan.Word, true},
		{"<x>:/[]?{}", scan.Word, true},
		{"alice;x=1", scan.User, true},
		{"alice@x", scan.User, false},
		{"example.com", scan.Host, true},
		{"DEADbeef09", scan.Hex, true},
		{"0x1", scan.Hex, false},
		{" \t", scan.Space, true},
	}

	for _, c := range cases {
		if got := scan.IsAll(c.s, c.cls); got != c.want {
			t.Errorf("scan.IsAll(%q, %v) = %v, want %v", c.s, c.cls, got, c.want)
		}
	}
	if !scan.IsToken("z9hG4bK776") || scan.IsToken("") {
		t.Errorf("scan.IsToken() mismatch")
	}
	if !scan.Is('a', scan.Alpha|scan.Digit) || scan.Is('-', scan.Alnum) {
		t.Errorf("scan.Is() mismatch")
	}
}
