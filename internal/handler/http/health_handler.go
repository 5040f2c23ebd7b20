package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mikiasgoitom/Edulearn/internal/handler/http/dto"
)

// ReadinessCheck reports whether one dependency can serve traffic.
type ReadinessCheck func(ctx context.Context) error

type HealthHandler struct {
	checks map[string]ReadinessCheck
	now    func() time.Time
}

func NewHealthHandler(checks map[string]ReadinessCheck) *HealthHandler {
	return &HealthHandler{checks: checks, now: time.Now}
}

// Health is the liveness probe; it never touches dependencies.
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, dto.HealthResponse{
		Success:   true,
		Message:   "Server is running",
		Timestamp: h.now().UTC().Format(time.RFC3339),
	})
}

// Ready pings every registered dependency with a short deadline.
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	resp := dto.HealthResponse{
		Success:   true,
		Message:   "Ready",
		Timestamp: h.now().UTC().Format(time.RFC3339),
		Checks:    make(map[string]string, len(h.checks)),
	}
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			resp.Success = false
			resp.Checks[name] = "down"
			continue
		}
		resp.Checks[name] = "up"
	}

	status := http.StatusOK
	if !resp.Success {
		resp.Message = "Not ready"
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, resp)
}
