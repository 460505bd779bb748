package sip

import (
	"log/slog"

	"github.com/ghettovoice/sipmsg/internal/log"
)

// DefaultMaxHeaders is the default limit of header fields in a single message.
const DefaultMaxHeaders = 256

// ParseOptions configures [ParseMessage] and [ParseStream].
// A nil *ParseOptions is valid and means defaults.
type ParseOptions struct {
	// NoCopy makes parsed values reference the input buffer instead of a private copy.
	// The caller must not modify the buffer while the message is in use.
	// Stream parsers always own their buffers and ignore the flag.
	NoCopy bool
	// Logger receives debug records. Defaults to a noop logger.
	Logger *slog.Logger
	// MaxHeaders limits the number of header fields, comma-separated values are counted
	// separately. Zero means [DefaultMaxHeaders], a negative value disables the limit.
	MaxHeaders int
	// Stats collects parse counters when set.
	Stats *StatsRecorder
}

func (o *ParseOptions) noCopy() bool {
	if o == nil {
		return false
	}
	return o.NoCopy
}

func (o *ParseOptions) logger() *slog.Logger {
	if o == nil || o.Logger == nil {
		return log.Noop
	}
	return o.Logger
}

func (o *ParseOptions) maxHeaders() int {
	if o == nil || o.MaxHeaders == 0 {
		return DefaultMaxHeaders
	}
	return o.MaxHeaders
}

func (o *ParseOptions) stats() *StatsRecorder {
	if o == nil {
		return nil
	}
	return o.Stats
}
