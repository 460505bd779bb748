package sip

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipmsg/internal/errorutil"
	"github.com/ghettovoice/sipmsg/internal/ioutil"
)

// StatusLine is the start line of a response.
type StatusLine struct {
	Status ResponseStatus `json:"status"`
	// Reason is the reason phrase as written in the message, it may be empty.
	Reason string `json:"reason,omitempty"`
}

// ReasonPhrase returns the reason phrase of the message or the registered one when the message has none.
func (l StatusLine) ReasonPhrase() string {
	if l.Reason != "" {
		return l.Reason
	}
	return l.Status.Reason()
}

func (l StatusLine) renderTo(w io.Writer) (int, error) {
	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	cw.WriteString(Proto20.String())
	cw.WriteString(" ")
	cw.WriteString(l.Status.String())
	cw.WriteString(" ")
	cw.WriteString(l.ReasonPhrase())
	return errtrace.Wrap2(cw.Result())
}

// Response represents a SIP response message.
type Response struct {
	StatusLine
	Headers Headers `json:"headers"`
	Body    string  `json:"body,omitempty"`
}

func (*Response) message() {}

// MessageHeaders returns the response headers.
func (res *Response) MessageHeaders() Headers {
	if res == nil {
		return nil
	}
	return res.Headers
}

// MessageBody returns the response body.
func (res *Response) MessageBody() string {
	if res == nil {
		return ""
	}
	return res.Body
}

// RenderTo renders the SIP response to the given writer.
func (res *Response) RenderTo(w io.Writer, opts *RenderOptions) (int, error) {
	if res == nil {
		return 0, nil
	}
	return errtrace.Wrap2(renderMessage(w, res.StatusLine.renderTo, res.Headers, res.Body, opts))
}

// Render renders the SIP response to a string.
func (res *Response) Render(opts *RenderOptions) string {
	if res == nil {
		return ""
	}
	return renderString(func(w io.Writer) (int, error) { return res.RenderTo(w, opts) })
}

// String returns the status line.
func (res *Response) String() string {
	if res == nil {
		return "<nil>"
	}
	return renderString(res.StatusLine.renderTo)
}

// Format implements [fmt.Formatter] for custom formatting.
func (res *Response) Format(f fmt.State, verb rune) {
	type hideMethods Response
	type Response hideMethods
	formatMessage(f, verb, res, (*Response)(res))
}

// LogValue implements [slog.LogValuer] for structured logging.
func (res *Response) LogValue() slog.Value {
	if res == nil {
		return slog.Value{}
	}

	attrs := make([]slog.Attr, 0, 6)
	attrs = append(attrs, slog.Int("status", int(res.Status)), slog.String("reason", res.ReasonPhrase()))
	if via, ok := res.Headers.FirstVia(); ok {
		attrs = append(attrs, slog.String("Via", via.RenderValue()))
	}
	if callID, ok := res.Headers.CallID(); ok {
		attrs = append(attrs, slog.String("Call-ID", string(callID)))
	}
	if cseq, ok := res.Headers.CSeq(); ok {
		attrs = append(attrs, slog.String("CSeq", cseq.RenderValue()))
	}
	return slog.GroupValue(attrs...)
}

// Clone returns a deep copy of the response.
func (res *Response) Clone() Message {
	if res == nil {
		return nil
	}

	res2 := *res
	res2.Headers = res.Headers.Clone()
	return &res2
}

// Equal returns whether the response is equal to another value.
// Reason phrases are not compared.
func (res *Response) Equal(val any) bool {
	var other *Response
	switch v := val.(type) {
	case Response:
		other = &v
	case *Response:
		other = v
	default:
		return false
	}

	if res == other {
		return true
	} else if res == nil || other == nil {
		return false
	}

	return res.Status == other.Status &&
		res.Headers.Equal(other.Headers) &&
		res.Body == other.Body
}

// IsValid returns whether the response is valid.
func (res *Response) IsValid() bool {
	return res.Validate() == nil
}

var resMandatoryHdrs = [...]string{"Via", "From", "To", "Call-ID", "CSeq"}

// Validate validates the response and returns an error if invalid.
func (res *Response) Validate() error {
	if res == nil {
		return errtrace.Wrap(errorutil.NewInvalidArgumentError("invalid response"))
	}

	errs := make([]error, 0, 7)
	if !res.Status.IsValid() {
		errs = append(errs, errorutil.Errorf("invalid status %d", res.Status))
	}
	if !res.Headers.IsValid() {
		errs = append(errs, errorutil.Errorf("invalid headers"))
	}
	for _, n := range resMandatoryHdrs {
		if !res.Headers.Has(n) {
			errs = append(errs, fmt.Errorf("%w: %s", ErrMissingHeader, n))
		}
	}

	if len(errs) > 0 {
		return errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidMessage, errors.Join(errs...)))
	}
	return nil
}
