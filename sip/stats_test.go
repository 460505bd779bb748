package sip_test

import (
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/ghettovoice/sipmsg/sip"
)

func TestStatsRecorder(t *testing.T) {
	t.Parallel()

	var stats sip.StatsRecorder
	opts := &sip.ParseOptions{Stats: &stats, MaxHeaders: 4}

	packets := []string{
		"INVITE sip:bob@biloxi.com SIP/2.0\r\n" + crlf(minHdrs...) + "\r\n",
		"SIP/2.0 200 OK\r\n\r\n",
		"SIP/2.0 200 OK\r\nCSeq: x\r\n\r\n",
		"SIP/2.0 2000 OK\r\n\r\n",
		"OPTIONS sip:bob@biloxi.com SIP/2.0\r\n\r\n",
		"SIP/2.0 200 OK\r\nX-A: 1\r\nX-B: 2\r\nX-C: 3\r\nX-D: 4\r\nX-E: 5\r\n\r\n",
	}

	var wg sync.WaitGroup
	for _, p := range packets {
		wg.Go(func() {
			sip.ParseMessage([]byte(p), opts) //nolint:errcheck
		})
	}
	wg.Wait()

	for range sip.ParseStream(strings.NewReader("\r\n\r\n"+streamOK+"\r\n"+streamOptions+"SIP/2.0 200 OK\r\n"), &sip.ParseOptions{Stats: &stats}).Messages() {
	}

	want := sip.StatsReport{
		Requests:   2,
		Responses:  2,
		Bytes:      uint64(len(packets[0]) + len(packets[1]) + len(streamOK) + len(streamOptions)),
		KeepAlives: 6,
		Errors: sip.ErrorStats{
			Grammar:  1,
			Framing:  1,
			Semantic: 1,
			IO:       1,
			Other:    1,
		},
	}
	got := stats.Report()
	if diff := cmp.Diff(got, want, cmpopts.IgnoreFields(sip.StatsReport{}, "Time")); diff != "" {
		t.Errorf("stats.Report() = %+v, want %+v\ndiff (-got +want):\n%v", got, want, diff)
	}
	if got.Time.IsZero() {
		t.Errorf("stats.Report().Time is zero")
	}
	if n := got.Errors.Total(); n != 5 {
		t.Errorf("got.Errors.Total() = %d, want 5", n)
	}
}
