package sip

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipmsg/internal/errorutil"
	"github.com/ghettovoice/sipmsg/internal/ioutil"
	"github.com/ghettovoice/sipmsg/uri"
)

// RequestLine is the start line of a request.
type RequestLine struct {
	Method RequestMethod `json:"method"`
	URI    *uri.SIP      `json:"uri"`
}

func (l RequestLine) renderTo(w io.Writer) (int, error) {
	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	cw.WriteString(string(l.Method))
	cw.WriteString(" ")
	if l.URI != nil {
		cw.Call(func(w io.Writer) (int, error) { return errtrace.Wrap2(l.URI.RenderTo(w, nil)) })
	}
	cw.WriteString(" ")
	cw.WriteString(Proto20.String())
	return errtrace.Wrap2(cw.Result())
}

// Request represents a SIP request message.
type Request struct {
	RequestLine
	Headers Headers `json:"headers"`
	Body    string  `json:"body,omitempty"`
	// Mandatory holds the first Via, From, To, Call-ID and CSeq headers.
	// The parser fills it, the headers are also present in Headers.
	Mandatory MandatoryHeaders `json:"-"`
}

func (*Request) message() {}

// MessageHeaders returns the request headers.
func (req *Request) MessageHeaders() Headers {
	if req == nil {
		return nil
	}
	return req.Headers
}

// MessageBody returns the request body.
func (req *Request) MessageBody() string {
	if req == nil {
		return ""
	}
	return req.Body
}

// RenderTo renders the SIP request to the given writer.
func (req *Request) RenderTo(w io.Writer, opts *RenderOptions) (int, error) {
	if req == nil {
		return 0, nil
	}
	return errtrace.Wrap2(renderMessage(w, req.RequestLine.renderTo, req.Headers, req.Body, opts))
}

// Render renders the SIP request to a string.
func (req *Request) Render(opts *RenderOptions) string {
	if req == nil {
		return ""
	}
	return renderString(func(w io.Writer) (int, error) { return req.RenderTo(w, opts) })
}

// String returns the request line.
func (req *Request) String() string {
	if req == nil {
		return "<nil>"
	}
	return renderString(req.RequestLine.renderTo)
}

// Format implements [fmt.Formatter] for custom formatting.
func (req *Request) Format(f fmt.State, verb rune) {
	type hideMethods Request
	type Request hideMethods
	formatMessage(f, verb, req, (*Request)(req))
}

// LogValue implements [slog.LogValuer] for structured logging.
func (req *Request) LogValue() slog.Value {
	if req == nil {
		return slog.Value{}
	}

	attrs := make([]slog.Attr, 0, 7)
	attrs = append(attrs, slog.String("method", string(req.Method)))
	if req.URI != nil {
		attrs = append(attrs, slog.String("uri", req.URI.String()))
	}
	m := req.Mandatory
	if m.Via != nil {
		attrs = append(attrs, slog.String("Via", m.Via.RenderValue()))
	}
	if m.From != nil {
		attrs = append(attrs, slog.String("From", m.From.RenderValue()))
	}
	if m.To != nil {
		attrs = append(attrs, slog.String("To", m.To.RenderValue()))
	}
	if m.CallID != "" {
		attrs = append(attrs, slog.String("Call-ID", string(m.CallID)))
	}
	if m.CSeq != nil {
		attrs = append(attrs, slog.String("CSeq", m.CSeq.RenderValue()))
	}
	return slog.GroupValue(attrs...)
}

// Clone returns a deep copy of the request.
func (req *Request) Clone() Message {
	if req == nil {
		return nil
	}

	req2 := *req
	req2.URI = req.URI.CloneSIP()
	req2.Headers = req.Headers.Clone()
	req2.Mandatory = collectMandatory(req2.Headers)
	return &req2
}

// Equal returns whether the request is equal to another value.
func (req *Request) Equal(val any) bool {
	var other *Request
	switch v := val.(type) {
	case Request:
		other = &v
	case *Request:
		other = v
	default:
		return false
	}

	if req == other {
		return true
	} else if req == nil || other == nil {
		return false
	}

	return req.Method.Equal(other.Method) &&
		uriEqual(req.URI, other.URI) &&
		req.Headers.Equal(other.Headers) &&
		req.Body == other.Body
}

func uriEqual(u1, u2 *uri.SIP) bool {
	if u1 == nil || u2 == nil {
		return u1 == nil && u2 == nil
	}
	return u1.Equal(u2)
}

// IsValid returns whether the request is valid.
func (req *Request) IsValid() bool {
	return req.Validate() == nil
}

var reqMandatoryHdrs = [...]string{"Via", "From", "To", "Call-ID", "CSeq"}

// Validate validates the request and returns an error if invalid.
func (req *Request) Validate() error {
	if req == nil {
		return errtrace.Wrap(errorutil.NewInvalidArgumentError("invalid request"))
	}

	errs := make([]error, 0, 8)
	if !req.Method.IsValid() {
		errs = append(errs, errorutil.Errorf("invalid method %q", req.Method))
	}
	if req.URI == nil || !req.URI.IsValid() {
		errs = append(errs, errorutil.Errorf("invalid URI %q", req.URI))
	}
	if !req.Headers.IsValid() {
		errs = append(errs, errorutil.Errorf("invalid headers"))
	}
	for _, n := range reqMandatoryHdrs {
		if !req.Headers.Has(n) {
			errs = append(errs, fmt.Errorf("%w: %s", ErrMissingHeader, n))
		}
	}
	if cseq, ok := req.Headers.CSeq(); ok && !cseq.Method.Equal(req.Method) {
		errs = append(errs, errorutil.Errorf("CSeq method %q does not match request method %q", cseq.Method, req.Method))
	}

	if len(errs) > 0 {
		return errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidMessage, errors.Join(errs...)))
	}
	return nil
}
