package sip

import (
	"errors"
	"log/slog"
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipmsg/header"
	"github.com/ghettovoice/sipmsg/internal/log"
	"github.com/ghettovoice/sipmsg/internal/scan"
	"github.com/ghettovoice/sipmsg/internal/types"
	"github.com/ghettovoice/sipmsg/internal/util"
	"github.com/ghettovoice/sipmsg/uri"
)

// ParsePacket parses a single SIP message from the given buffer b with default options.
// See [ParseMessage] for details.
func ParsePacket(b []byte) (Message, error) {
	return errtrace.Wrap2(ParseMessage(b, nil))
}

// ParseMessage parses a single SIP message from the given buffer b.
//
// The buffer must hold exactly one message: the start line, header lines terminated by CRLF,
// the blank line and the optional body. Obsolete line folding is rejected.
// Everything after the blank line is the body when the message has a Content-Type header,
// Content-Length is not enforced.
//
// Requests must carry From, To, Call-ID and CSeq headers, otherwise a [*ParseError] wrapping
// [ErrMissingHeader] is returned. Parsing stops at the first error, no partial message is returned.
func ParseMessage(b []byte, opts *ParseOptions) (Message, error) {
	var src string
	if opts.noCopy() {
		src = util.UnsafeString(b)
	} else {
		src = string(b)
	}
	msg, err := parseMessage(src, opts)
	if err != nil {
		opts.stats().recordError(err)
		return nil, errtrace.Wrap(err)
	}
	opts.stats().recordMessage(msg, len(src))
	return msg, nil
}

// parseState is the framer state at the moment of failure.
type parseState int

const (
	parseStateStart   parseState = iota // parsing message start line
	parseStateHeaders                   // parsing message headers
	parseStateBody                      // slicing message body
)

func (s parseState) String() string {
	switch s {
	case parseStateStart:
		return "start line"
	case parseStateHeaders:
		return "headers"
	default:
		return "body"
	}
}

func parseMessage(src string, opts *ParseOptions) (Message, error) {
	logger := opts.logger()
	msg, state, err := frame(src, opts, logger)
	if err != nil {
		logger.Debug("failed to parse SIP message",
			slog.String("state", state.String()),
			slog.Any("error", err),
			slog.Any("data", log.Snippet(src, 128)),
		)
		return nil, errtrace.Wrap(err)
	}
	logger.Debug("SIP message parsed", slog.Any("message", msg))
	return msg, nil
}

func frame(src string, opts *ParseOptions, logger *slog.Logger) (Message, parseState, error) {
	var (
		state = parseStateStart
		c     = scan.NewCursor(src)
		req   *Request
		res   *Response
		hdrs  Headers
		err   error
	)

	if strings.HasPrefix(src, "SIP/") {
		res = new(Response)
		if res.StatusLine, err = readStatusLine(c); err != nil {
			return nil, state, errtrace.Wrap(err)
		}
	} else {
		req = new(Request)
		if req.RequestLine, err = readRequestLine(c); err != nil {
			return nil, state, errtrace.Wrap(err)
		}
	}

	state = parseStateHeaders
	var (
		hasCT   bool
		maxHdrs = opts.maxHeaders()
	)
	for {
		if s, ok := c.PeekN(2); ok && s == "\r\n" {
			c.Skip(2)
			break
		}
		if err := checkHeaderLine(c); err != nil {
			return nil, state, errtrace.Wrap(err)
		}

		name, err := header.ReadName(c)
		if err != nil {
			return nil, state, errtrace.Wrap(err)
		}
		n := len(hdrs)
		if hdrs, err = header.Read(c, name, hdrs); err != nil {
			return nil, state, errtrace.Wrap(err)
		}
		c.SkipSpace()
		if err := c.ExpectCRLF(); err != nil {
			return nil, state, errtrace.Wrap(lineEndErr(err, name))
		}

		if !header.IsKnown(name) {
			logger.Debug("unknown header kept as is", slog.String("name", name))
		}
		for _, h := range hdrs[n:] {
			if _, ok := h.(*header.ContentType); ok {
				hasCT = true
			}
			if req != nil {
				req.Mandatory.capture(h)
			}
		}
		if maxHdrs > 0 && len(hdrs) > maxHdrs {
			e := c.Errorf(ErrTooManyHeaders, "limit is %d", maxHdrs)
			e.Class = scan.ClassFraming
			return nil, state, errtrace.Wrap(e)
		}
	}

	state = parseStateBody
	var body string
	if hasCT {
		body = c.Remaining()
	} else if rest := c.Remaining(); rest != "" {
		logger.Debug("message without Content-Type, trailing bytes ignored", slog.Int("size", len(rest)))
	}

	if res != nil {
		res.Headers, res.Body = hdrs, body
		return res, state, nil
	}

	req.Headers, req.Body = hdrs, body
	if name, ok := req.Mandatory.missing(); ok {
		e := c.Errorf(ErrMissingHeader, "%s header", name)
		e.Header, e.Class = string(name), scan.ClassSemantic
		return nil, state, errtrace.Wrap(e)
	}
	return req, state, nil
}

// checkHeaderLine rejects input that cannot start a header line.
func checkHeaderLine(c *scan.Cursor) error {
	b, ok := c.Peek()
	switch {
	case !ok:
		return errtrace.Wrap(framingErr(c.Unexpected("header or blank line")))
	case b == ' ' || b == '\t':
		e := c.Errorf(ErrUnexpectedByte, "line folding is not supported")
		e.Class = scan.ClassFraming
		return errtrace.Wrap(e)
	default:
		return nil
	}
}

// lineEndErr classifies a failure at the end of the header line.
// Truncated input is a framing error, a stray byte after the value is a grammar error of the header.
func lineEndErr(err error, name string) error {
	err = scan.WithHeader(err, string(header.CanonicName(name)))
	if errors.Is(err, ErrUnexpectedEOF) {
		return scan.WithClass(err, scan.ClassFraming) //errtrace:skip
	}
	return err //errtrace:skip
}

func framingErr(e *scan.Error) *scan.Error {
	e.Class = scan.ClassFraming
	return e
}

// invalidStartLine reports that want was expected in the start line.
func invalidStartLine(c *scan.Cursor, want string) error {
	e := framingErr(c.Unexpected(want))
	e.Kind = ErrInvalidStartLine
	return e //errtrace:skip
}

func readSpace(c *scan.Cursor) error {
	if c.SkipSpace() == 0 {
		return errtrace.Wrap(invalidStartLine(c, "whitespace"))
	}
	return nil
}

// readVersion reads the SIP-Version, only the case-sensitive SIP/2.0 literal is accepted.
func readVersion(c *scan.Cursor) error {
	if _, err := types.ReadSIP20(c); err != nil {
		return errtrace.Wrap(invalidStartLine(c, Proto20.String()))
	}
	return nil
}

// readRequestLine reads
//
//	Request-Line = Method SP Request-URI SP SIP-Version CRLF
func readRequestLine(c *scan.Cursor) (RequestLine, error) {
	var line RequestLine
	mtd := c.ReadWhile(scan.Token)
	if mtd == "" {
		return line, errtrace.Wrap(invalidStartLine(c, "request method"))
	}
	line.Method = types.ParseRequestMethod(mtd)
	if err := readSpace(c); err != nil {
		return line, errtrace.Wrap(err)
	}

	u, err := uri.Read(c)
	if err != nil {
		return line, errtrace.Wrap(scan.WithClass(err, scan.ClassFraming))
	}
	line.URI = u

	if err := readSpace(c); err != nil {
		return line, errtrace.Wrap(err)
	}
	if err := readVersion(c); err != nil {
		return line, errtrace.Wrap(err)
	}
	if err := c.ExpectCRLF(); err != nil {
		return line, errtrace.Wrap(invalidStartLine(c, "CRLF"))
	}
	return line, nil
}

// readStatusLine reads
//
//	Status-Line = SIP-Version SP Status-Code SP Reason-Phrase CRLF
//
// An empty reason phrase is accepted with or without the separating space.
func readStatusLine(c *scan.Cursor) (StatusLine, error) {
	var line StatusLine
	if err := readVersion(c); err != nil {
		return line, errtrace.Wrap(err)
	}
	if err := readSpace(c); err != nil {
		return line, errtrace.Wrap(err)
	}

	m := c.Mark()
	code := c.ReadWhile(scan.Digit)
	sts, err := types.ParseResponseStatus(code)
	if err != nil {
		c.Rewind(m)
		return line, errtrace.Wrap(invalidStartLine(c, "3-digit status code"))
	}
	line.Status = sts

	if !c.AtEOL() {
		if err := readSpace(c); err != nil {
			return line, errtrace.Wrap(err)
		}
		if line.Reason, err = c.ReadText(); err != nil {
			return line, errtrace.Wrap(scan.WithClass(err, scan.ClassFraming))
		}
	}
	if err := c.ExpectCRLF(); err != nil {
		return line, errtrace.Wrap(invalidStartLine(c, "CRLF"))
	}
	return line, nil
}
