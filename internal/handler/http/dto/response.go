package dto

import (
	"github.com/mikiasgoitom/Edulearn/internal/domain/apperror"
)

// Envelope is the body of every API response.
type Envelope struct {
	Success bool                  `json:"success"`
	Message string                `json:"message,omitempty"`
	Data    any                   `json:"data,omitempty"`
	Errors  []apperror.FieldError `json:"errors,omitempty"`
	// Stack carries internal error detail outside production only.
	Stack string `json:"stack,omitempty"`
}

// HealthResponse is returned by the liveness and readiness probes.
type HealthResponse struct {
	Success   bool              `json:"success"`
	Message   string            `json:"message"`
	Timestamp string            `json:"timestamp"`
	Checks    map[string]string `json:"checks,omitempty"`
}
