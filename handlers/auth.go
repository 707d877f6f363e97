// handlers/auth.go
package handlers

import (
	"errors"
	"log"
	"regexp"
	"time"

	"codefolio-backend/middleware"
	"codefolio-backend/models"
	"codefolio-backend/services"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const sessionTTL = 24 * time.Hour

func SetupAuthRoutes(app *fiber.App, userService *services.UserService, db *gorm.DB) {
	auth := app.Group("/api/auth")

	auth.Post("/signup", func(c *fiber.Ctx) error {
		var req struct {
			Name     string `json:"name"`
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON"})
		}

		if req.Email == "" || req.Password == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Email and password are required"})
		}
		if !emailRe.MatchString(req.Email) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid email format"})
		}
		if len(req.Password) < 8 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Password must be at least 8 characters long"})
		}
		if req.Name == "" {
			req.Name = "Coder"
		}

		if _, err := userService.FindByEmail(c.Context(), req.Email); err == nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Email already exists"})
		} else if !errors.Is(err, services.ErrUserNotFound) {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
		}

		user, err := userService.Create(c.Context(), req.Name, req.Email, string(hash))
		if err != nil {
			log.Printf("❌ [AUTH] Signup failed for %s: %v", req.Email, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"user":    fiber.Map{"id": user.ID, "email": user.Email, "name": user.Name},
			"message": "Signup successful",
		})
	})

	auth.Post("/login", func(c *fiber.Ctx) error {
		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON"})
		}

		if req.Email == "" || req.Password == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Email and password are required"})
		}
		if !emailRe.MatchString(req.Email) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid email format"})
		}

		user, err := userService.FindByEmail(c.Context(), req.Email)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid credentials"})
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid credentials"})
		}

		session := models.Session{
			ID:        uuid.NewString(),
			UserID:    user.ID,
			Token:     uuid.NewString(),
			ExpiresAt: time.Now().Add(sessionTTL),
		}
		if err := db.WithContext(c.Context()).Create(&session).Error; err != nil {
			log.Printf("❌ [AUTH] Failed to create session for %s: %v", user.ID, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not create session"})
		}

		return c.JSON(fiber.Map{
			"user":    fiber.Map{"id": user.ID, "email": user.Email, "name": user.Name},
			"token":   session.Token,
			"message": "Login successful",
		})
	})

	auth.Post("/logout", middleware.SessionAuthMiddleware(db), func(c *fiber.Ctx) error {
		token := c.Locals("session_token").(string)
		if err := db.WithContext(c.Context()).Where("token = ?", token).Delete(&models.Session{}).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not invalidate session"})
		}
		return c.JSON(fiber.Map{"message": "Logout successful"})
	})
}
