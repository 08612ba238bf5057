// middleware/auth.go
package middleware

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
)

const userIDKey = "user_id"

// UserContextMiddleware takes the caller identity set upstream in X-User-ID. Identity is
// opaque here; nothing is verified. When required is true a request without it is
// rejected with 401.
func UserContextMiddleware(required bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := strings.TrimSpace(c.Get("X-User-ID"))
		if required && userID == "" {
			log.Printf("❌ [USER_CTX] X-User-ID required but missing: %s %s", c.Method(), c.Path())
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"detail": "missing X-User-ID header",
			})
		}

		// Attach to ctx for handlers
		c.Locals(userIDKey, userID)
		return c.Next()
	}
}

// UserID returns the identity attached by UserContextMiddleware, or "".
func UserID(c *fiber.Ctx) string {
	id, _ := c.Locals(userIDKey).(string)
	return id
}
