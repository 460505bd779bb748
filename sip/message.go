package sip

import (
	"fmt"
	"io"
	"strconv"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipmsg/internal/ioutil"
	"github.com/ghettovoice/sipmsg/internal/types"
	"github.com/ghettovoice/sipmsg/internal/util"
)

// Message is a SIP message, either [*Request] or [*Response].
type Message interface {
	types.Renderer
	// MessageHeaders returns the ordered message headers.
	MessageHeaders() Headers
	// MessageBody returns the message body, empty if the message has no body.
	MessageBody() string
	String() string
	Clone() Message
	Equal(val any) bool
	IsValid() bool

	message()
}

// renderMessage writes start-line CRLF *(header CRLF) CRLF body.
func renderMessage(
	w io.Writer,
	startLine func(io.Writer) (int, error),
	hdrs Headers,
	body string,
	opts *RenderOptions,
) (int, error) {
	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	cw.Call(startLine)
	cw.WriteString("\r\n")
	cw.Call(func(w io.Writer) (int, error) { return errtrace.Wrap2(hdrs.RenderTo(w, opts)) })
	cw.WriteString("\r\n")
	cw.WriteString(body)
	return errtrace.Wrap2(cw.Result())
}

func renderString(fn func(io.Writer) (int, error)) string {
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	fn(sb) //nolint:errcheck
	return sb.String()
}

// formatMessage implements [fmt.Formatter] for messages:
// %s prints the start line, %+s the whole message, %q and %+q their quoted forms.
func formatMessage(f fmt.State, verb rune, msg Message, fallback any) {
	switch verb {
	case 's':
		if f.Flag('+') {
			msg.RenderTo(f, nil) //nolint:errcheck
			return
		}
		io.WriteString(f, msg.String()) //nolint:errcheck
	case 'q':
		if f.Flag('+') {
			io.WriteString(f, strconv.Quote(msg.Render(nil))) //nolint:errcheck
			return
		}
		io.WriteString(f, strconv.Quote(msg.String())) //nolint:errcheck
	default:
		fmt.Fprintf(f, fmt.FormatString(f, verb), fallback)
	}
}
