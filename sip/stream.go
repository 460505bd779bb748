package sip

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"iter"
	"log/slog"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipmsg/internal/errorutil"
	"github.com/ghettovoice/sipmsg/internal/scan"
	"github.com/ghettovoice/sipmsg/internal/util"
)

// StreamParser parses SIP messages from a byte stream, e.g. a TCP connection.
//
// On streams every message must carry a Content-Length header, it tells where the body ends.
// CRLF keep-alives sent between messages are skipped.
type StreamParser struct {
	rdr  io.Reader
	opts *ParseOptions
}

// ParseStream creates a new [StreamParser] reading from r.
// The parser reads on the caller's goroutine and never closes r.
func ParseStream(r io.Reader, opts *ParseOptions) *StreamParser {
	return &StreamParser{rdr: r, opts: opts}
}

// Messages returns an iterator that yields each parsed [Message].
//
// In success case, it yields a [Message] and nil error.
// If an error occurs, it yields nil message and the error, then the iteration stops,
// because the position of the next message is unknown.
// A clean end of stream between messages stops the iteration without error.
// If [io.EOF] happens in the middle of a message, it is replaced with [io.ErrUnexpectedEOF].
//
// Example:
//
//	for msg, err := range sip.ParseStream(conn, nil).Messages() {
//		if err != nil {
//			// log error and close the connection
//			break
//		}
//		// handle message
//	}
func (p *StreamParser) Messages() iter.Seq2[Message, error] {
	return func(yield func(Message, error) bool) {
		br := getBufRdr(p.rdr)
		defer freeBufRdr(br)
		stats := p.opts.stats()
		for {
			msg, size, err := p.next(br)
			if msg == nil && err == nil {
				return
			}
			if err != nil {
				stats.recordError(err)
			} else {
				stats.recordMessage(msg, size)
			}
			if !yield(msg, err) || err != nil {
				return
			}
		}
	}
}

// next reads the next message and returns it with its size in bytes.
// It returns nil message and nil error at the clean end of stream.
func (p *StreamParser) next(br *bufio.Reader) (Message, int, error) {
	logger := p.opts.logger()

	found, err := skipKeepAlive(br)
	if found > 0 {
		logger.Debug("keep-alive skipped", slog.Int("size", found))
		p.opts.stats().recordKeepAlive(found)
	}
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, 0, nil
		}
		return nil, 0, errtrace.Wrap(err)
	}

	buf := getBytesBuf()
	defer freeBytesBuf(buf)
	if err := readHead(br, buf); err != nil {
		return nil, 0, errtrace.Wrap(err)
	}

	msg, err := parseMessage(buf.String(), p.opts)
	if err != nil {
		return nil, 0, errtrace.Wrap(err)
	}

	hdrs := msg.MessageHeaders()
	size, ok := hdrs.ContentLength()
	if !ok {
		e := &scan.Error{
			Kind:   ErrMissingHeader,
			Class:  scan.ClassSemantic,
			Header: "Content-Length",
			Detail: "Content-Length header is required on streams",
		}
		logger.Debug("failed to parse SIP message", slog.Any("error", e))
		return nil, 0, errtrace.Wrap(e)
	}
	if size > maxMsgSize {
		return nil, 0, errtrace.Wrap(errorutil.NewWrapperError(ErrMessageTooLarge, "body of %d bytes", size))
	}
	if size == 0 {
		return msg, buf.Len(), nil
	}

	body := make([]byte, size)
	if _, err := io.ReadFull(br, body); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return nil, 0, errtrace.Wrap(err)
	}
	if _, ok := hdrs.ContentType(); !ok {
		logger.Debug("message without Content-Type, body ignored", slog.Int("size", len(body)))
		return msg, buf.Len() + len(body), nil
	}
	switch m := msg.(type) {
	case *Request:
		m.Body = util.UnsafeString(body)
	case *Response:
		m.Body = util.UnsafeString(body)
	}
	return msg, buf.Len() + len(body), nil
}

// skipKeepAlive consumes CR and LF bytes preceding the next message.
func skipKeepAlive(br *bufio.Reader) (int, error) {
	var n int
	for {
		b, err := br.ReadByte()
		if err != nil {
			return n, errtrace.Wrap(err)
		}
		if b != '\r' && b != '\n' {
			return n, errtrace.Wrap(br.UnreadByte())
		}
		n++
	}
}

// readHead reads lines into buf up to and including the blank line.
func readHead(br *bufio.Reader, buf *bytes.Buffer) error {
	start := buf.Len()
	for {
		line, err := br.ReadSlice('\n')
		buf.Write(line)
		if buf.Len() > maxMsgSize {
			return errtrace.Wrap(errorutil.NewWrapperError(ErrMessageTooLarge, "head exceeds %d bytes", maxMsgSize))
		}
		switch {
		case errors.Is(err, bufio.ErrBufferFull):
			continue
		case errors.Is(err, io.EOF):
			return errtrace.Wrap(io.ErrUnexpectedEOF)
		case err != nil:
			return errtrace.Wrap(err)
		}
		if buf.Len()-start == 2 && buf.Bytes()[start] == '\r' {
			return nil
		}
		start = buf.Len()
	}
}
