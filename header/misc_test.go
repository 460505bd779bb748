package header_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/ghettovoice/sipmsg/header"
	"github.com/ghettovoice/sipmsg/internal/scan"
)

func TestMiscHeaders_Parse(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in      string
		want    header.Header
		wantErr error
	}{
		{"Timestamp: 54", &header.Timestamp{Value: "54"}, nil},
		{"Timestamp: 54.25 .5", &header.Timestamp{Value: "54.25", Delay: ".5"}, nil},
		{"Timestamp: 1 2.", &header.Timestamp{Value: "1", Delay: "2."}, nil},
		{"Timestamp: abc", nil, scan.ErrInvalidNumber},
		{"Timestamp: 1 x", nil, scan.ErrUnexpectedByte},

		{"Retry-After: 18000;duration=3600", &header.RetryAfter{Delay: 18000, Duration: 3600, HasDuration: true}, nil},
		{"Retry-After: 120 (I'm in a meeting)", &header.RetryAfter{Delay: 120, Comment: "I'm in a meeting"}, nil},
		{
			"Retry-After: 120 (meeting (weekly)) ;duration=60;x",
			&header.RetryAfter{Delay: 120, Comment: "meeting (weekly)", Duration: 60, HasDuration: true, Params: header.Params{{Name: "x"}}},
			nil,
		},
		{"Retry-After: 1;duration=x", nil, scan.ErrInvalidNumber},
		{"Retry-After: 1 (oops", nil, scan.ErrUnexpectedEOF},

		{"Content-Disposition: session;handling=optional", &header.ContentDisposition{Type: "session", Handling: "optional"}, nil},
		{
			"Content-Disposition: icon ; handling=REQUIRED;x=1",
			&header.ContentDisposition{Type: "icon", Handling: "REQUIRED", Params: header.Params{{Name: "x", Value: "1"}}},
			nil,
		},
		{"Content-Disposition: session;handling=\"optional\"", nil, scan.ErrUnexpectedByte},
		{"Content-Disposition: ", nil, scan.ErrUnexpectedEOF},

		{"Priority: emergency", header.PriorityEmergency, nil},
		{"Priority: non-urgent", header.PriorityNonUrgent, nil},
		{"Priority: x-custom", header.Priority("x-custom"), nil},
		{"Priority: ", nil, scan.ErrUnexpectedEOF},

		{"MIME-Version: 1.0", header.MIMEVersion("1.0"), nil},
		{"MIME-Version: 1", nil, scan.ErrUnexpectedEOF},
		{"MIME-Version: 1.x", nil, scan.ErrInvalidNumber},

		{
			"In-Reply-To: 70710@saturn.bell-tel.com, 17320@saturn.bell-tel.com",
			header.InReplyTo{"70710@saturn.bell-tel.com", "17320@saturn.bell-tel.com"},
			nil,
		},
		{"In-Reply-To: a@b,", nil, scan.ErrUnexpectedEOF},

		{"i: f81d4fae-7dec-11d0-a765-00a0c91e6bf6@foo.bar.com", header.CallID("f81d4fae-7dec-11d0-a765-00a0c91e6bf6@foo.bar.com"), nil},
		{"Call-ID: 3848276298220188511@atlanta.example.com", header.CallID("3848276298220188511@atlanta.example.com"), nil},
		{"Call-ID: a@", nil, scan.ErrUnexpectedEOF},
		{"Call-ID: a b", nil, scan.ErrUnexpectedByte},
		{"Call-ID: ", nil, scan.ErrUnexpectedEOF},
	}

	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			t.Parallel()

			got, err := header.Parse(c.in)
			if diff := cmp.Diff(err, c.wantErr, cmpopts.EquateErrors()); diff != "" {
				t.Errorf("header.Parse(%q) error = %v, want %v\ndiff (-got +want):\n%v", c.in, err, c.wantErr, diff)
			}
			if diff := cmp.Diff(got, c.want, cmpOpts); diff != "" {
				t.Errorf("header.Parse(%q) = %+v, want %+v\ndiff (-got +want):\n%v", c.in, got, c.want, diff)
			}
		})
	}
}

func TestMiscHeaders_Render(t *testing.T) {
	t.Parallel()

	cases := []struct {
		hdr  header.Header
		want string
	}{
		{&header.Timestamp{Value: "54.25", Delay: ".5"}, "Timestamp: 54.25 .5"},
		{&header.RetryAfter{Delay: 120, Comment: "I'm in a meeting", Duration: 60, HasDuration: true}, "Retry-After: 120 (I'm in a meeting);duration=60"},
		{&header.ContentDisposition{Type: "session", Handling: "optional", Params: header.Params{{Name: "x"}}}, "Content-Disposition: session;handling=optional;x"},
		{header.PriorityUrgent, "Priority: urgent"},
		{header.MIMEVersion("1.0"), "MIME-Version: 1.0"},
		{header.InReplyTo{"a@b", "c"}, "In-Reply-To: a@b, c"},
		{header.CallID("a@b"), "Call-ID: a@b"},
	}

	for _, c := range cases {
		t.Run(c.want, func(t *testing.T) {
			t.Parallel()

			got := c.hdr.Render(nil)
			if got != c.want {
				t.Errorf("hdr.Render(nil) = %q, want %q", got, c.want)
			}
			hdr, err := header.Parse(got)
			if err != nil {
				t.Fatalf("header.Parse(%q) error = %v, want nil", got, err)
			}
			if !hdr.Equal(c.hdr) {
				t.Errorf("header.Parse(%q) = %v, want %v", got, hdr, c.hdr)
			}
		})
	}

	if got, want := header.CallID("a@b").Render(&header.RenderOptions{Compact: true}), "i: a@b"; got != want {
		t.Errorf("CallID.Render(compact) = %q, want %q", got, want)
	}
}

func TestTimestamp_Durations(t *testing.T) {
	t.Parallel()

	hdr := &header.Timestamp{Value: "54.25", Delay: ".5"}
	since, err := hdr.Since()
	if err != nil {
		t.Fatalf("hdr.Since() error = %v, want nil", err)
	}
	if want := 54*time.Second + 250*time.Millisecond; since != want {
		t.Errorf("hdr.Since() = %v, want %v", since, want)
	}
	delay, err := hdr.DelayDuration()
	if err != nil {
		t.Fatalf("hdr.DelayDuration() error = %v, want nil", err)
	}
	if want := 500 * time.Millisecond; delay != want {
		t.Errorf("hdr.DelayDuration() = %v, want %v", delay, want)
	}

	if delay, err := (&header.Timestamp{Value: "1"}).DelayDuration(); err != nil || delay != 0 {
		t.Errorf("DelayDuration() without delay = %v, %v, want 0, nil", delay, err)
	}
	if (&header.Timestamp{Value: "x"}).IsValid() {
		t.Errorf("Timestamp{x}.IsValid() = true, want false")
	}
}

func TestMiscHeaders_Helpers(t *testing.T) {
	t.Parallel()

	if got, want := (&header.RetryAfter{Delay: 90}).After(), 90*time.Second; got != want {
		t.Errorf("RetryAfter.After() = %v, want %v", got, want)
	}
	if got := (*header.RetryAfter)(nil).After(); got != 0 {
		t.Errorf("nil.After() = %v, want 0", got)
	}

	disp := []struct {
		hdr  *header.ContentDisposition
		want bool
	}{
		{&header.ContentDisposition{Type: "session"}, true},
		{&header.ContentDisposition{Type: "session", Handling: "Required"}, true},
		{&header.ContentDisposition{Type: "session", Handling: "optional"}, false},
		{nil, false},
	}
	for _, c := range disp {
		if got := c.hdr.IsRequired(); got != c.want {
			t.Errorf("%v.IsRequired() = %v, want %v", c.hdr, got, c.want)
		}
	}

	if !header.PriorityEmergency.Equal(header.Priority("EMERGENCY")) {
		t.Errorf("PriorityEmergency.Equal(\"EMERGENCY\") = false, want true")
	}
	if header.CallID("abc@host").Equal(header.CallID("ABC@host")) {
		t.Errorf("CallID.Equal() is case-insensitive, want case-sensitive")
	}

	valid := []struct {
		hdr  header.Header
		want bool
	}{
		{header.CallID("a@b"), true},
		{header.CallID("a b"), false},
		{header.CallID(""), false},
		{header.CallID("a@"), false},
		{header.MIMEVersion("1.0"), true},
		{header.MIMEVersion("1"), false},
		{header.InReplyTo{}, false},
		{header.Priority("non urgent"), false},
	}
	for _, c := range valid {
		if got := c.hdr.IsValid(); got != c.want {
			t.Errorf("%T(%q).IsValid() = %v, want %v", c.hdr, c.hdr.RenderValue(), got, c.want)
		}
	}
}
