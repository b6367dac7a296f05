package http

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
	"github.com/melih/valman/internal/core/domain"
)

// requireBasicAuth checks every request against the configured credentials.
// A missing or malformed header is rejected before any comparison happens.
func requireBasicAuth(creds domain.Credentials, logger *slog.Logger) fiber.Handler {
	return basicauth.New(basicauth.Config{
		Authorizer: creds.Match,
		Unauthorized: func(c *fiber.Ctx) error {
			logger.Warn("authentication failed", "path", c.Path(), "ip", c.IP(), "error", domain.ErrAuth)
			c.Set(fiber.HeaderWWWAuthenticate, "Basic")
			return c.SendStatus(fiber.StatusUnauthorized)
		},
	})
}
