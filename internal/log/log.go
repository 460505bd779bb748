// Package log provides logging utilities.
package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/golang-cz/devslog"
	"github.com/phsym/console-slog"
	slogformatter "github.com/samber/slog-formatter"

	"github.com/ghettovoice/sipmsg/internal/scan"
	"github.com/ghettovoice/sipmsg/internal/types"
	"github.com/ghettovoice/sipmsg/internal/util"
)

var newHandler = slogformatter.NewFormatterHandler(
	slogformatter.ErrorFormatter("error"),
	slogformatter.FormatByType(func(e *scan.Error) slog.Value {
		attrs := []slog.Attr{
			slog.String("class", e.Class.String()),
			slog.Int("line", e.Pos.Line),
			slog.Int("column", e.Pos.Column),
			slog.Int("offset", e.Pos.Offset),
		}
		if e.Kind != nil {
			attrs = append(attrs, slog.String("kind", e.Kind.Error()))
		}
		if e.Header != "" {
			attrs = append(attrs, slog.String("header", e.Header))
		}
		if e.Context != "" {
			attrs = append(attrs, slog.String("near", e.Context))
		}
		return slog.GroupValue(attrs...)
	}),
	slogformatter.FormatByType(func(r types.Renderer) slog.Value {
		return slog.StringValue(r.Render(nil))
	}),
)

// NewConsole returns a human-friendly logger writing to w.
func NewConsole(w io.Writer, level slog.Leveler) *slog.Logger {
	return slog.New(newHandler(
		console.NewHandler(w, &console.HandlerOptions{
			AddSource:  true,
			Level:      level,
			TimeFormat: time.RFC3339Nano,
		}),
	))
}

// NewDev returns a developer logger writing to w.
func NewDev(w io.Writer, level slog.Leveler) *slog.Logger {
	return slog.New(newHandler(
		devslog.NewHandler(w, &devslog.Options{
			HandlerOptions: &slog.HandlerOptions{
				AddSource: true,
				Level:     level,
			},
			SortKeys:   true,
			TimeFormat: time.RFC3339Nano,
		}),
	))
}

// Def is a default logger.
var Def = NewConsole(os.Stderr, slog.LevelDebug)

// Dev is a developer logger.
var Dev = NewDev(os.Stderr, slog.LevelDebug)

type noopHandler struct{}

func (noopHandler) Enabled(context.Context, slog.Level) bool { return false }

func (noopHandler) Handle(context.Context, slog.Record) error { return nil }

func (h noopHandler) WithAttrs([]slog.Attr) slog.Handler { return h }

func (h noopHandler) WithGroup(string) slog.Handler { return h }

// Noop is a noop logger.
var Noop = slog.New(noopHandler{})

type calcValue struct{ fn func() any }

func (v calcValue) LogValue() slog.Value {
	cv := v.fn()
	switch cv := cv.(type) {
	case slog.Value:
		return cv
	default:
		return slog.AnyValue(cv)
	}
}

// CalcValue returns a value logger that computes a value using a fn.
// It is used to defer expensive formatting until the record is actually handled.
func CalcValue(fn func() any) slog.LogValuer { return calcValue{fn} }

// Snippet returns a value logger that prints at most n leading bytes of v.
func Snippet[T util.Byteseq](v T, n int) slog.LogValuer {
	return CalcValue(func() any {
		if len(v) <= n {
			return string(v)
		}
		return fmt.Sprintf("%s... (%d bytes)", v[:n], len(v))
	})
}
