package types_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/ghettovoice/sipmsg/internal/scan"
	"github.com/ghettovoice/sipmsg/internal/types"
)

func TestParseRequestMethod(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in        string
		want      types.RequestMethod
		wantKnown bool
	}{
		{"INVITE", types.RequestMethodInvite, true},
		{"SUBSCRIBE", types.RequestMethodSubscribe, true},
		{"invite", "invite", false},
		{"FOO", "FOO", false},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			t.Parallel()

			got := types.ParseRequestMethod(c.in)
			if got != c.want {
				t.Errorf("types.ParseRequestMethod(%q) = %q, want %q", c.in, got, c.want)
			}
			if got.IsKnown() != c.wantKnown {
				t.Errorf("types.ParseRequestMethod(%q).IsKnown() = %v, want %v", c.in, got.IsKnown(), c.wantKnown)
			}
		})
	}
}

func TestParseTransportProto(t *testing.T) {
	t.Parallel()

	if got := types.ParseTransportProto("udp"); got != types.TransportProtoUDP {
		t.Errorf("types.ParseTransportProto(\"udp\") = %q, want %q", got, types.TransportProtoUDP)
	}
	if got := types.ParseTransportProto("QUIC"); got.IsKnown() {
		t.Errorf("types.ParseTransportProto(\"QUIC\").IsKnown() = true, want false")
	}
	if !types.TransportProtoTLS.IsReliable() || types.TransportProtoUDP.IsReliable() {
		t.Error("unexpected IsReliable() result")
	}
}

func TestResponseStatus(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in         string
		want       types.ResponseStatus
		wantReason string
		wantErr    bool
	}{
		{"180", types.ResponseStatusRinging, "Ringing", false},
		{"484", types.ResponseStatusAddressIncomplete, "Address Incomplete", false},
		{"299", 299, "", false},
		{"099", 0, "", true},
		{"1000", 0, "", true},
		{"2x0", 0, "", true},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			t.Parallel()

			got, err := types.ParseResponseStatus(c.in)
			if (err != nil) != c.wantErr {
				t.Fatalf("types.ParseResponseStatus(%q) error = %v, want error %v", c.in, err, c.wantErr)
			}
			if got != c.want {
				t.Errorf("types.ParseResponseStatus(%q) = %d, want %d", c.in, got, c.want)
			}
			if got.Reason() != c.wantReason {
				t.Errorf("status.Reason() = %q, want %q", got.Reason(), c.wantReason)
			}
		})
	}

	if !types.ResponseStatusTrying.IsProvisional() || types.ResponseStatusTrying.IsFinal() {
		t.Error("100 must be provisional")
	}
	if !types.ResponseStatusDecline.IsGlobalFailure() || !types.ResponseStatusDecline.IsFinal() {
		t.Error("603 must be a final global failure")
	}
}

func TestParams(t *testing.T) {
	t.Parallel()

	ps := types.Params{
		{Name: "transport", Value: "tcp"},
		{Name: "lr"},
		{Name: "Transport", Value: "udp"},
		{Name: "x", Value: "a b", Quoted: true},
	}

	if v, ok := ps.Get("TRANSPORT"); !ok || v != "udp" {
		t.Errorf("ps.Get(\"TRANSPORT\") = (%q, %v), want (\"udp\", true)", v, ok)
	}
	if !ps.Has("LR") {
		t.Error("ps.Has(\"LR\") = false, want true")
	}
	if got, want := ps.Render(), `;transport=tcp;lr;Transport=udp;x="a b"`; got != want {
		t.Errorf("ps.Render() = %q, want %q", got, want)
	}

	ps2 := ps.Clone().Del("transport").Set("y", "1")
	want := types.Params{{Name: "lr"}, {Name: "x", Value: "a b", Quoted: true}, {Name: "y", Value: "1"}}
	if diff := cmp.Diff(ps2, want); diff != "" {
		t.Errorf("modified params mismatch (-got +want):\n%v", diff)
	}
	if len(ps) != 4 {
		t.Errorf("original params modified: %v", ps)
	}

	a := types.Params{{Name: "a", Value: "X"}, {Name: "b"}}
	b := types.Params{{Name: "B"}, {Name: "A", Value: "x"}}
	if !a.Equal(b) {
		t.Errorf("%v.Equal(%v) = false, want true", a, b)
	}
	c := types.Params{{Name: "a", Value: "X", Quoted: true}, {Name: "b"}}
	if a.Equal(c) {
		t.Errorf("%v.Equal(%v) = true, want false", a, c)
	}
}

func TestQ(t *testing.T) {
	t.Parallel()

	cases := []struct {
		q     types.Q
		str   string
		milli int
	}{
		{types.Q{Int: 0, Frac: 7}, "0.7", 700},
		{types.Q{Int: 1}, "1", 1000},
		{types.NewQ(0, 75, 3), "0.075", 75},
		{types.NewQ(1, 0, 1), "1.0", 1000},
		{types.Q{Frac: 125}, "0.125", 125},
	}
	for _, c := range cases {
		t.Run(c.str, func(t *testing.T) {
			t.Parallel()

			if got := c.q.String(); got != c.str {
				t.Errorf("q.String() = %q, want %q", got, c.str)
			}
			if got := c.q.Milli(); got != c.milli {
				t.Errorf("q.Milli() = %d, want %d", got, c.milli)
			}
		})
	}

	if !types.NewQ(0, 70, 2).Equal(types.Q{Frac: 7}) {
		t.Error("0.70 must be equal to 0.7")
	}
	if types.NewQ(1, 1, 3).IsValid() {
		t.Error("1.001 must be invalid")
	}
}

func TestReadSIP20(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in      string
		want    types.ProtoInfo
		wantErr error
	}{
		{in: "SIP/2.0", want: types.ProtoSIP20},
		{in: "SIP/2.0/UDP", want: types.ProtoSIP20},
		{in: "sip/2.0", wantErr: scan.ErrUnexpectedByte},
		{in: "SIP / 2.0", wantErr: scan.ErrUnexpectedByte},
		{in: "FOO/9.9", wantErr: scan.ErrUnexpectedByte},
		{in: "SIP/3.0", wantErr: scan.ErrUnexpectedByte},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			t.Parallel()

			got, err := types.ReadSIP20(scan.NewCursor(c.in))
			if diff := cmp.Diff(err, c.wantErr, cmpopts.EquateErrors()); diff != "" {
				t.Fatalf("types.ReadSIP20(%q) error = %v, want %v", c.in, err, c.wantErr)
			}
			if c.wantErr != nil {
				return
			}
			if got != c.want {
				t.Errorf("types.ReadSIP20(%q) = %+v, want %+v", c.in, got, c.want)
			}
			if !got.Equal(types.ProtoInfo{Name: "sip", Version: "2.0"}) || got.Equal(types.ProtoInfo{Name: "SIP", Version: "3.0"}) {
				t.Errorf("got.Equal() mismatch for %v", got)
			}
			if got.String() != "SIP/2.0" || !got.IsValid() {
				t.Errorf("got = %q, valid %v, want \"SIP/2.0\", valid", got.String(), got.IsValid())
			}
		})
	}
}
