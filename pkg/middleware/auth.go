package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// APIToken guards the read API with a static bearer token. An empty
// configured token leaves the API open, which is the local-development
// default.
func APIToken(token string, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if token == "" {
			return c.Next()
		}

		got := strings.TrimPrefix(c.Get("Authorization"), "Bearer ")
		if got == "" {
			logger.Warn("Missing authorization token")
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authorization token required",
			})
		}

		if subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
			logger.Warn("Invalid authorization token")
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid token",
			})
		}

		return c.Next()
	}
}
