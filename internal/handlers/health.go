package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

type HealthHandler struct {
	db  Pinger
	now func() time.Time
}

// NewHealthHandler takes the store to probe on readiness; nil for services without one.
func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db, now: time.Now}
}

// Liveness never touches downstream services or the store.
func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{
		Status:    "Healthy",
		Timestamp: h.now().UTC().Format(time.RFC3339Nano),
	})
}

func (h *HealthHandler) Readiness(c echo.Context) error {
	if h.db == nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "db not initialized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()
	if err := h.db.Ping(ctx); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "db not ready"})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ready"})
}
