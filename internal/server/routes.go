package server

import (
	"github.com/gofiber/fiber/v3"

	"nzpt/internal/handlers"
	"nzpt/internal/metrics"
	"nzpt/internal/stats"
)

// RegisterRoutes registers all application routes. pageUpdated is the note
// shown on the historical page.
func (s *Server) RegisterRoutes(database handlers.Pinger, svc *stats.Service, pageUpdated string) {
	metrics.Init(svc)

	pageHandler := handlers.NewPageHandler(svc, s.Cfg, pageUpdated)
	healthHandler := handlers.NewHealthHandler(database)

	s.App.Get("/", pageHandler.Home)
	s.App.Get("/bills", pageHandler.Bills)
	s.App.Get("/historical", pageHandler.Historical)
	s.App.Get("/historical/chart.svg", pageHandler.HistoricalChart)

	s.App.Get("/healthz", healthHandler.Check)
	s.App.Get("/metrics", metrics.Handler())

	// Anything else gets the branded 404 page.
	s.App.Use(func(c fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "That page does not exist.")
	})
}
