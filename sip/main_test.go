package sip_test

import (
	"net/netip"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"go.uber.org/goleak"

	"github.com/ghettovoice/sipmsg/header"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var cmpOpts = cmp.Options{
	cmpopts.EquateEmpty(),
	cmp.Comparer(func(a, b netip.Addr) bool { return a == b }),
	cmp.Comparer(func(a, b header.Q) bool { return a.Equal(b) }),
}

func mustParseHdr(t *testing.T, s string) header.Header {
	t.Helper()
	hdr, err := header.Parse(s)
	if err != nil {
		t.Fatalf("header.Parse(%q) error = %v, want nil", s, err)
	}
	return hdr
}

func crlf(lines ...string) string {
	var s string
	for _, l := range lines {
		s += l + "\r\n"
	}
	return s
}
