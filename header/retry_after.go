package header

import (
	"io"
	"strconv"
	"time"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipmsg/internal/grammar"
	"github.com/ghettovoice/sipmsg/internal/ioutil"
	"github.com/ghettovoice/sipmsg/internal/scan"
)

// RetryAfter represents the Retry-After header field.
// The Retry-After header field indicates how long the service is expected to be unavailable
// or when the called party anticipates being available again.
//
//	Retry-After = "Retry-After" HCOLON delta-seconds [ comment ] *( SEMI retry-param )
//	retry-param = ("duration" EQUAL delta-seconds) / generic-param
type RetryAfter struct {
	Delay       uint32 `json:"delay"`
	Comment     string `json:"comment,omitempty"`
	Duration    uint32 `json:"duration,omitempty"`
	HasDuration bool   `json:"has_duration,omitempty"`
	Params      Params `json:"params,omitempty"`
}

var retryAfterFields = grammar.Fields[RetryAfter]{
	"duration": func(hdr *RetryAfter, p Param) error {
		n, err := uintParam(p, 32)
		if err != nil {
			return err
		}
		hdr.Duration, hdr.HasDuration = uint32(n), true
		return nil
	},
}

func readRetryAfter(c *scan.Cursor) (Header, error) {
	n, err := readNumber(c, 32)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	hdr := &RetryAfter{Delay: uint32(n)}

	m := c.Mark()
	c.SkipSpace()
	if c.Is('(') {
		if hdr.Comment, err = c.ReadComment(); err != nil {
			return nil, errtrace.Wrap(err)
		}
	} else {
		c.Rewind(m)
	}

	if hdr.Params, err = readHdrParams(c, hdr, retryAfterFields); err != nil {
		return nil, errtrace.Wrap(err)
	}
	return hdr, nil
}

// CanonicName returns the canonical name of the header.
func (*RetryAfter) CanonicName() Name { return "Retry-After" }

// CompactName returns the compact name of the header (Retry-After has no compact form).
func (*RetryAfter) CompactName() Name { return "Retry-After" }

// RenderTo writes the header to the provided writer.
func (hdr *RetryAfter) RenderTo(w io.Writer, opts *RenderOptions) (int, error) {
	if hdr == nil {
		return 0, nil
	}
	return errtrace.Wrap2(renderHdr(w, hdr, opts, hdr.renderValue))
}

func (hdr *RetryAfter) renderValue(w io.Writer) (int, error) {
	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	cw.WriteString(strconv.FormatUint(uint64(hdr.Delay), 10))
	if hdr.Comment != "" {
		cw.WriteString(" (")
		cw.WriteString(hdr.Comment)
		cw.WriteByte(')')
	}
	if hdr.HasDuration {
		cw.WriteString(";duration=")
		cw.WriteString(strconv.FormatUint(uint64(hdr.Duration), 10))
	}
	cw.Call(renderParams(hdr.Params))
	return errtrace.Wrap2(cw.Result())
}

// Render returns the string representation of the header.
func (hdr *RetryAfter) Render(opts *RenderOptions) string {
	if hdr == nil {
		return ""
	}
	return renderHdrString(hdr, opts)
}

// RenderValue returns the header value without the name prefix.
func (hdr *RetryAfter) RenderValue() string {
	if hdr == nil {
		return ""
	}
	return renderString(hdr.renderValue)
}

// String returns the string representation of the header value.
func (hdr *RetryAfter) String() string { return hdr.RenderValue() }

// Clone returns a copy of the header.
func (hdr *RetryAfter) Clone() Header {
	if hdr == nil {
		return nil
	}
	hdr2 := *hdr
	hdr2.Params = hdr.Params.Clone()
	return &hdr2
}

// Equal compares this header with another for equality.
func (hdr *RetryAfter) Equal(val any) bool {
	other, ok := castHdr[RetryAfter](val)
	if !ok {
		return false
	}
	if hdr == other {
		return true
	} else if hdr == nil || other == nil {
		return false
	}
	return hdr.Delay == other.Delay &&
		hdr.Comment == other.Comment &&
		hdr.HasDuration == other.HasDuration && hdr.Duration == other.Duration &&
		hdr.Params.Equal(other.Params)
}

// IsValid checks whether the header is syntactically valid.
func (hdr *RetryAfter) IsValid() bool { return hdr != nil }

// After returns the delay as [time.Duration].
func (hdr *RetryAfter) After() time.Duration {
	if hdr == nil {
		return 0
	}
	return time.Duration(hdr.Delay) * time.Second
}
