package header

import (
	"io"
	"strconv"
	"time"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipmsg/internal/ioutil"
	"github.com/ghettovoice/sipmsg/internal/scan"
)

// Timestamp represents the Timestamp header field.
// The Timestamp header field describes when the UAC sent the request to the UAS.
//
//	Timestamp = "Timestamp" HCOLON 1*(DIGIT) [ "." *(DIGIT) ] [ LWS delay ]
//	delay     = *(DIGIT) [ "." *(DIGIT) ]
type Timestamp struct {
	// Value and Delay are kept as written to preserve precision.
	Value string `json:"value"`
	Delay string `json:"delay,omitempty"`
}

func readTimestamp(c *scan.Cursor) (Header, error) {
	hdr := new(Timestamp)
	start := c.Offset()
	if _, err := c.ReadDigits(); err != nil {
		return nil, errtrace.Wrap(err)
	}
	if c.Consume('.') {
		c.ReadWhile(scan.Digit)
	}
	hdr.Value = c.Since(start)

	m := c.Mark()
	if c.SkipSpace() == 0 {
		return hdr, nil
	}
	start = c.Offset()
	if c.ReadWhile(scan.Digit) != "" || c.Is('.') {
		if c.Consume('.') {
			c.ReadWhile(scan.Digit)
		}
		hdr.Delay = c.Since(start)
		return hdr, nil
	}
	c.Rewind(m)
	return hdr, nil
}

// Since returns the value as duration since an arbitrary epoch chosen by the client.
func (hdr *Timestamp) Since() (time.Duration, error) {
	return errtrace.Wrap2(seconds(hdr.Value))
}

// DelayDuration returns the delay or zero when the delay is absent.
func (hdr *Timestamp) DelayDuration() (time.Duration, error) {
	if hdr.Delay == "" {
		return 0, nil
	}
	return errtrace.Wrap2(seconds(hdr.Delay))
}

func seconds(v string) (time.Duration, error) {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, errtrace.Wrap(err)
	}
	return time.Duration(f * float64(time.Second)), nil
}

// CanonicName returns the canonical name of the header.
func (*Timestamp) CanonicName() Name { return "Timestamp" }

// CompactName returns the compact name of the header (Timestamp has no compact form).
func (*Timestamp) CompactName() Name { return "Timestamp" }

// RenderTo writes the header to the provided writer.
func (hdr *Timestamp) RenderTo(w io.Writer, opts *RenderOptions) (int, error) {
	if hdr == nil {
		return 0, nil
	}
	return errtrace.Wrap2(renderHdr(w, hdr, opts, hdr.renderValue))
}

func (hdr *Timestamp) renderValue(w io.Writer) (int, error) {
	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	cw.WriteString(hdr.Value)
	if hdr.Delay != "" {
		cw.WriteByte(' ')
		cw.WriteString(hdr.Delay)
	}
	return errtrace.Wrap2(cw.Result())
}

// Render returns the string representation of the header.
func (hdr *Timestamp) Render(opts *RenderOptions) string {
	if hdr == nil {
		return ""
	}
	return renderHdrString(hdr, opts)
}

// RenderValue returns the header value without the name prefix.
func (hdr *Timestamp) RenderValue() string {
	if hdr == nil {
		return ""
	}
	return renderString(hdr.renderValue)
}

// String returns the string representation of the header value.
func (hdr *Timestamp) String() string { return hdr.RenderValue() }

// Clone returns a copy of the header.
func (hdr *Timestamp) Clone() Header {
	if hdr == nil {
		return nil
	}
	hdr2 := *hdr
	return &hdr2
}

// Equal compares this header with another for equality.
func (hdr *Timestamp) Equal(val any) bool {
	other, ok := castHdr[Timestamp](val)
	if !ok {
		return false
	}
	if hdr == other {
		return true
	} else if hdr == nil || other == nil {
		return false
	}
	return hdr.Value == other.Value && hdr.Delay == other.Delay
}

// IsValid checks whether the header is syntactically valid.
func (hdr *Timestamp) IsValid() bool {
	if hdr == nil {
		return false
	}
	if _, err := seconds(hdr.Value); err != nil {
		return false
	}
	if hdr.Delay == "" {
		return true
	}
	_, err := seconds(hdr.Delay)
	return err == nil
}
