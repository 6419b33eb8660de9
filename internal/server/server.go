package server

import (
	"crypto/tls"
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/limiter"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"github.com/gofiber/fiber/v3/middleware/static"
	"github.com/gofiber/storage/redis/v3"
	"github.com/google/uuid"

	"nzpt/internal/config"
	"nzpt/internal/handlers"
	"nzpt/views"
	"nzpt/web"
)

// Server wraps the Fiber app and configuration.
type Server struct {
	App *fiber.App
	Cfg *config.Config
}

// New creates a new server with middleware configured.
func New(cfg *config.Config) *Server {
	app := fiber.New(fiber.Config{
		Views:       views.NewEngine(cfg.IsDev()),
		ViewsLayout: "layouts/main",
		ErrorHandler: func(c fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			message := "Something went wrong loading the statistics. Please try again later."

			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
				message = e.Message
			}

			if code >= fiber.StatusInternalServerError {
				slog.Error("request failed",
					"path", c.Path(),
					"request_id", requestid.FromContext(c),
					"error", err,
				)
			}

			return handlers.RenderError(c, cfg, code, message)
		},
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	app.Use(logger.New(logger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path} | ${respHeader:X-Request-ID}\n",
	}))

	// The site is read-only, so only safe methods are allowed cross-origin.
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowedOrigins(),
		AllowMethods: []string{fiber.MethodGet, fiber.MethodHead},
		MaxAge:       86400,
	}))

	app.Use(limiter.New(limiterConfig(cfg)))

	// Static files
	app.Get("/assets/*", static.New("", static.Config{
		FS:     web.Assets,
		MaxAge: 3600,
	}))

	return &Server{
		App: app,
		Cfg: cfg,
	}
}

// limiterConfig limits requests per IP. Counters live in Redis when
// REDIS_URL is set so several instances share one budget.
func limiterConfig(cfg *config.Config) limiter.Config {
	lc := limiter.Config{
		Max:        cfg.RateLimitPerMinute,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c fiber.Ctx) error {
			return fiber.NewError(fiber.StatusTooManyRequests, "Rate limit exceeded. Please try again later.")
		},
		Next: func(c fiber.Ctx) bool {
			return c.Path() == "/healthz"
		},
	}

	if cfg.RedisURL != "" {
		lc.Storage = redis.New(redis.Config{
			URL:   cfg.RedisURL,
			Reset: false,
		})
		slog.Info("rate limiter using redis storage")
	}

	return lc
}

// Start starts the server with the configured address and TLS settings.
func (s *Server) Start() error {
	if s.Cfg.TLSEnabled {
		listenConfig := fiber.ListenConfig{
			CertFile:    s.Cfg.TLSCertFile,
			CertKeyFile: s.Cfg.TLSKeyFile,
			TLSConfigFunc: func(tc *tls.Config) {
				tc.MinVersion = tls.VersionTLS12
			},
		}
		slog.Info("starting server with TLS", "addr", s.Cfg.ServerAddr)
		return s.App.Listen(s.Cfg.ServerAddr, listenConfig)
	}
	slog.Info("starting server", "addr", s.Cfg.ServerAddr)
	return s.App.Listen(s.Cfg.ServerAddr)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown() error {
	return s.App.Shutdown()
}
