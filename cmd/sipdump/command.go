package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"

	"braces.dev/errtrace"
	"github.com/urfave/cli/v3"

	"github.com/ghettovoice/sipmsg/header"
	"github.com/ghettovoice/sipmsg/internal/log"
	"github.com/ghettovoice/sipmsg/sip"
)

const (
	flagStream     = "stream"
	flagCompact    = "compact"
	flagJSON       = "json"
	flagDev        = "dev"
	flagVerbose    = "verbose"
	flagNoCopy     = "no-copy"
	flagMaxHeaders = "max-headers"
	flagStats      = "stats"
)

func newCommand() *cli.Command {
	return &cli.Command{
		Name:      "sipdump",
		Usage:     "parse SIP messages and print them re-encoded",
		ArgsUsage: "[file ...]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    flagStream,
				Aliases: []string{"s"},
				Usage:   "read a stream of messages framed by Content-Length",
				Sources: cli.EnvVars("SIPDUMP_STREAM"),
			},
			&cli.BoolFlag{
				Name:    flagCompact,
				Aliases: []string{"c"},
				Usage:   "render compact header names",
				Sources: cli.EnvVars("SIPDUMP_COMPACT"),
			},
			&cli.BoolFlag{
				Name:    flagJSON,
				Aliases: []string{"j"},
				Usage:   "print messages as JSON lines",
				Sources: cli.EnvVars("SIPDUMP_JSON"),
			},
			&cli.BoolFlag{
				Name:    flagDev,
				Usage:   "use the developer log format",
				Sources: cli.EnvVars("SIPDUMP_DEV"),
			},
			&cli.BoolFlag{
				Name:    flagVerbose,
				Aliases: []string{"v"},
				Usage:   "log parser debug messages",
				Sources: cli.EnvVars("SIPDUMP_VERBOSE"),
			},
			&cli.BoolFlag{
				Name:    flagNoCopy,
				Usage:   "parse packets without copying the input buffer",
				Sources: cli.EnvVars("SIPDUMP_NO_COPY"),
			},
			&cli.IntFlag{
				Name:    flagMaxHeaders,
				Usage:   "maximum number of header fields per message, negative disables the limit",
				Value:   sip.DefaultMaxHeaders,
				Sources: cli.EnvVars("SIPDUMP_MAX_HEADERS"),
			},
			&cli.BoolFlag{
				Name:    flagStats,
				Usage:   "log parse statistics on exit",
				Sources: cli.EnvVars("SIPDUMP_STATS"),
			},
		},
		Action: dump,
	}
}

type dumper struct {
	out     io.Writer
	in      io.Reader
	logger  *slog.Logger
	opts    *sip.ParseOptions
	render  *sip.RenderOptions
	stats   *sip.StatsRecorder
	stream  bool
	asJSON  bool
	printed int
}

func newDumper(cmd *cli.Command) *dumper {
	lvl := slog.LevelInfo
	if cmd.Bool(flagVerbose) {
		lvl = slog.LevelDebug
	}

	errw := cmd.ErrWriter
	if errw == nil {
		errw = os.Stderr
	}
	var logger *slog.Logger
	if cmd.Bool(flagDev) {
		logger = log.NewDev(errw, lvl)
	} else {
		logger = log.NewConsole(errw, lvl)
	}

	stats := new(sip.StatsRecorder)
	d := &dumper{
		out:    cmd.Writer,
		in:     cmd.Reader,
		logger: logger,
		opts: &sip.ParseOptions{
			NoCopy:     cmd.Bool(flagNoCopy),
			Logger:     logger,
			MaxHeaders: int(cmd.Int(flagMaxHeaders)),
			Stats:      stats,
		},
		stats:  stats,
		render: &sip.RenderOptions{Compact: cmd.Bool(flagCompact)},
		stream: cmd.Bool(flagStream),
		asJSON: cmd.Bool(flagJSON),
	}
	if d.out == nil {
		d.out = os.Stdout
	}
	if d.in == nil {
		d.in = os.Stdin
	}
	return d
}

func dump(_ context.Context, cmd *cli.Command) error {
	d := newDumper(cmd)

	srcs := cmd.Args().Slice()
	if len(srcs) == 0 {
		srcs = []string{"-"}
	}

	var errs []error
	for _, src := range srcs {
		if err := d.dumpSource(src); err != nil {
			d.logger.Error("failed to dump source", slog.String("source", src), slog.Any("error", err))
			errs = append(errs, err)
		}
	}
	if cmd.Bool(flagStats) {
		d.logger.Info("parse statistics", slog.Any("stats", d.stats.Report()))
	}
	if len(errs) > 0 {
		return errtrace.Wrap(errors.Join(errs...))
	}
	return nil
}

func (d *dumper) dumpSource(src string) error {
	var r io.Reader
	if src == "-" {
		r = d.in
	} else {
		f, err := os.Open(src)
		if err != nil {
			return errtrace.Wrap(err)
		}
		defer f.Close()
		r = f
	}

	if d.stream {
		var n int
		for msg, err := range sip.ParseStream(r, d.opts).Messages() {
			if err != nil {
				return errtrace.Wrap(err)
			}
			if err := d.print(msg); err != nil {
				return errtrace.Wrap(err)
			}
			n++
		}
		d.logger.Debug("stream drained", slog.String("source", src), slog.Int("messages", n))
		return nil
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return errtrace.Wrap(err)
	}
	msg, err := sip.ParseMessage(data, d.opts)
	if err != nil {
		return errtrace.Wrap(err)
	}
	return errtrace.Wrap(d.print(msg))
}

func (d *dumper) print(msg sip.Message) error {
	defer func() { d.printed++ }()

	if d.asJSON {
		data, err := marshalMessage(msg)
		if err != nil {
			return errtrace.Wrap(err)
		}
		data = append(data, '\n')
		_, err = d.out.Write(data)
		return errtrace.Wrap(err)
	}

	if d.printed > 0 {
		if _, err := io.WriteString(d.out, "\n"); err != nil {
			return errtrace.Wrap(err)
		}
	}
	_, err := msg.RenderTo(d.out, d.render)
	return errtrace.Wrap(err)
}

type messageJSON struct {
	Kind      string            `json:"kind"`
	StartLine string            `json:"start_line"`
	Headers   []json.RawMessage `json:"headers"`
	Body      string            `json:"body,omitempty"`
}

func marshalMessage(msg sip.Message) ([]byte, error) {
	mj := messageJSON{
		Kind:      "request",
		StartLine: msg.String(),
		Body:      msg.MessageBody(),
	}
	if _, ok := msg.(*sip.Response); ok {
		mj.Kind = "response"
	}

	hdrs := msg.MessageHeaders()
	mj.Headers = make([]json.RawMessage, 0, len(hdrs))
	for _, h := range hdrs {
		data, err := header.ToJSON(h)
		if err != nil {
			return nil, errtrace.Wrap(err)
		}
		mj.Headers = append(mj.Headers, data)
	}
	return errtrace.Wrap2(json.Marshal(mj))
}
