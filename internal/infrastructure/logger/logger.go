package logger

import (
	"context"
	"log/slog"

	usecasecontract "github.com/mikiasgoitom/Edulearn/internal/usecase/contract"
)

// AppLogger adapts *slog.Logger to the IAppLogger contract.
type AppLogger struct {
	l *slog.Logger
}

// NewAppLogger wraps l. A nil logger falls back to slog.Default.
func NewAppLogger(l *slog.Logger) usecasecontract.IAppLogger {
	if l == nil {
		l = slog.Default()
	}
	return &AppLogger{l: l}
}

func (a *AppLogger) Debug(ctx context.Context, msg string, args ...any) {
	a.l.DebugContext(ctx, msg, args...)
}

func (a *AppLogger) Info(ctx context.Context, msg string, args ...any) {
	a.l.InfoContext(ctx, msg, args...)
}

func (a *AppLogger) Warn(ctx context.Context, msg string, args ...any) {
	a.l.WarnContext(ctx, msg, args...)
}

func (a *AppLogger) Error(ctx context.Context, msg string, args ...any) {
	a.l.ErrorContext(ctx, msg, args...)
}

func (a *AppLogger) With(args ...any) usecasecontract.IAppLogger {
	return &AppLogger{l: a.l.With(args...)}
}
