package handlers

import (
	"context"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v3"
)

// Pinger reports whether the data store is reachable. *db.DB implements it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves the liveness probe.
type HealthHandler struct {
	db      Pinger
	timeout time.Duration
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(database Pinger) *HealthHandler {
	return &HealthHandler{db: database, timeout: 2 * time.Second}
}

// Check answers 200 when the database responds and 503 otherwise.
func (h *HealthHandler) Check(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), h.timeout)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		slog.Warn("health check failed", "error", err)
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "unavailable",
		})
	}

	return c.JSON(fiber.Map{"status": "ok"})
}
