package http

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/melih/valman/internal/core/domain"
	"github.com/melih/valman/web"
)

// NewApp builds the fiber application with every route behind basic auth.
func NewApp(h *DashboardHandler, creds domain.Credentials, metrics *Metrics, logger *slog.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler(logger),
	})

	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(requestLogger(logger))
	app.Use(metrics.instrument())
	app.Use(requireBasicAuth(creds, logger))

	app.Get("/", h.Index)
	app.Get("/restart", h.Restart)
	app.Get("/backups/restore/:name", h.RestoreBackup)
	app.Get("/backups/:name", h.DownloadBackup)
	app.Get("/metrics", metrics.handler())
	app.Use("/static", filesystem.New(filesystem.Config{
		Root:       http.FS(web.Static),
		PathPrefix: "static",
	}))

	return app
}

func requestLogger(logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		attrs := []any{
			"method", c.Method(),
			"path", c.Path(),
			"status", c.Response().StatusCode(),
			"duration", time.Since(start),
			"request_id", c.Locals("requestid"),
		}
		if err != nil {
			attrs = append(attrs, "error", err)
		}
		logger.Info("request", attrs...)
		return err
	}
}

func errorHandler(logger *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
		}
		if code >= fiber.StatusInternalServerError {
			logger.Error("unhandled request error", "path", c.Path(), "error", err)
		}
		c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
		return c.Status(code).SendString(err.Error())
	}
}
