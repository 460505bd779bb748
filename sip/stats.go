package sip

import (
	"errors"
	"log/slog"
	"sync/atomic"
	"time"
)

// StatsReport is a snapshot of parser statistics.
type StatsReport struct {
	Time time.Time `json:"time"`
	// Requests is a number of parsed requests.
	Requests uint64 `json:"requests"`
	// Responses is a number of parsed responses.
	Responses uint64 `json:"responses"`
	// Bytes is a number of bytes consumed by successful parses, bodies included.
	Bytes uint64 `json:"bytes"`
	// KeepAlives is a number of CRLF bytes skipped between stream messages.
	KeepAlives uint64 `json:"keep_alives"`
	// Errors is a number of failed parses by error class.
	Errors ErrorStats `json:"errors"`
}

// ErrorStats holds failure counters.
type ErrorStats struct {
	Grammar  uint64 `json:"grammar"`
	Framing  uint64 `json:"framing"`
	Semantic uint64 `json:"semantic"`
	// IO counts reader failures and truncated streams.
	IO uint64 `json:"io"`
	// Other counts limit violations like too many headers.
	Other uint64 `json:"other"`
}

// Total returns the sum of all counters.
func (s ErrorStats) Total() uint64 {
	return s.Grammar + s.Framing + s.Semantic + s.IO + s.Other
}

// LogValue implements [slog.LogValuer] for structured logging.
func (r StatsReport) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Uint64("requests", r.Requests),
		slog.Uint64("responses", r.Responses),
		slog.Uint64("bytes", r.Bytes),
		slog.Uint64("keep_alives", r.KeepAlives),
		slog.Group("errors",
			slog.Uint64("grammar", r.Errors.Grammar),
			slog.Uint64("framing", r.Errors.Framing),
			slog.Uint64("semantic", r.Errors.Semantic),
			slog.Uint64("io", r.Errors.IO),
			slog.Uint64("other", r.Errors.Other),
		),
	)
}

// StatsRecorder records parser statistics.
// It is safe for concurrent use, one recorder may be shared by parsers of many connections.
// The zero value is ready to use.
type StatsRecorder struct {
	reqs,
	ress,
	bytes,
	keepAlives atomic.Uint64

	grammarErrs,
	framingErrs,
	semanticErrs,
	ioErrs,
	otherErrs atomic.Uint64
}

// Report returns the current statistics.
func (rcdr *StatsRecorder) Report() StatsReport {
	return StatsReport{
		Time:       time.Now(),
		Requests:   rcdr.reqs.Load(),
		Responses:  rcdr.ress.Load(),
		Bytes:      rcdr.bytes.Load(),
		KeepAlives: rcdr.keepAlives.Load(),
		Errors: ErrorStats{
			Grammar:  rcdr.grammarErrs.Load(),
			Framing:  rcdr.framingErrs.Load(),
			Semantic: rcdr.semanticErrs.Load(),
			IO:       rcdr.ioErrs.Load(),
			Other:    rcdr.otherErrs.Load(),
		},
	}
}

func (rcdr *StatsRecorder) recordMessage(msg Message, size int) {
	if rcdr == nil {
		return
	}
	switch msg.(type) {
	case *Request:
		rcdr.reqs.Add(1)
	case *Response:
		rcdr.ress.Add(1)
	}
	rcdr.bytes.Add(uint64(size))
}

func (rcdr *StatsRecorder) recordKeepAlive(n int) {
	if rcdr == nil || n <= 0 {
		return
	}
	rcdr.keepAlives.Add(uint64(n))
}

func (rcdr *StatsRecorder) recordError(err error) {
	if rcdr == nil || err == nil {
		return
	}
	var perr *ParseError
	switch {
	case errors.Is(err, ErrTooManyHeaders), errors.Is(err, ErrMessageTooLarge):
		rcdr.otherErrs.Add(1)
	case errors.As(err, &perr):
		switch perr.Class {
		case ClassFraming:
			rcdr.framingErrs.Add(1)
		case ClassSemantic:
			rcdr.semanticErrs.Add(1)
		default:
			rcdr.grammarErrs.Add(1)
		}
	default:
		rcdr.ioErrs.Add(1)
	}
}
