package logger

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// Options configures the process logger.
type Options struct {
	Level       slog.Level
	SentryDSN   string
	Environment string
	Output      io.Writer
}

// New builds a JSON logger that also forwards errors to Sentry when a DSN is
// configured. The request id from context is attached to every record.
// The returned flag reports whether Sentry was initialised.
func New(opts Options) (*slog.Logger, bool) {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	stdoutHandler := slog.NewJSONHandler(out, &slog.HandlerOptions{Level: opts.Level})

	if opts.SentryDSN == "" {
		return slog.New(NewLogHandlerDecorator(stdoutHandler, RequestIDExtractor)), false
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         opts.SentryDSN,
		Environment: opts.Environment,
		EnableLogs:  true,
	}); err != nil {
		slog.New(stdoutHandler).Error("failed to initialize Sentry", slog.String("error", err.Error()))
		return slog.New(NewLogHandlerDecorator(stdoutHandler, RequestIDExtractor)), false
	}

	sentryHandler := sentryslog.Option{
		EventLevel: []slog.Level{slog.LevelError},
		LogLevel:   []slog.Level{slog.LevelWarn, slog.LevelError},
	}.NewSentryHandler(context.Background())

	combined := newMultiHandler(stdoutHandler, sentryHandler)
	return slog.New(NewLogHandlerDecorator(combined, RequestIDExtractor)), true
}
