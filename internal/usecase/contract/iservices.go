package usecasecontract

import (
	"context"
	"time"

	"github.com/mikiasgoitom/Edulearn/internal/domain/apperror"
)

// IAppLogger is a structured, context-aware logger. args are alternating
// key/value pairs.
type IAppLogger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)
	With(args ...any) IAppLogger
}

// IConfigProvider exposes runtime configuration to the outer layers.
type IConfigProvider interface {
	GetPort() string
	GetFrontendURL() string
	GetJWTExpiry() time.Duration
	IsProduction() bool
}

// IValidator checks a request struct and returns every violation in field
// declaration order; nil means valid.
type IValidator interface {
	Struct(v any) []apperror.FieldError
}
