// middleware/auth.go
package middleware

import (
	"log"
	"strings"
	"time"

	"codefolio-backend/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SessionAuthMiddleware validates the Bearer session token issued at login and
// attaches the owning user id to the request context.
func SessionAuthMiddleware(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "missing Authorization header",
			})
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == authHeader {
			// no "Bearer " prefix, accept the raw value
			token = authHeader
		}

		var session models.Session
		if err := db.Where("token = ?", token).First(&session).Error; err != nil {
			log.Printf("🚫 [AUTH] Unknown session token for %s", c.Path())
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid session token",
			})
		}
		if time.Now().After(session.ExpiresAt) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "session expired",
			})
		}

		c.Locals("user_id", session.UserID)
		c.Locals("session_token", token)
		return c.Next()
	}
}
