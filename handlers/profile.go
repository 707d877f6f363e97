// handlers/profile.go
package handlers

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"codefolio-backend/middleware"
	"codefolio-backend/services"
	"codefolio-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func SetupProfileRoutes(app *fiber.App, userService *services.UserService, db *gorm.DB) {
	users := app.Group("/api/users")

	users.Get("/:id", func(c *fiber.Ctx) error {
		user, err := userService.FindByID(c.Context(), c.Params("id"))
		if err != nil {
			if errors.Is(err, services.ErrUserNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
		}
		return c.JSON(user)
	})

	secured := users.Group("/", middleware.SessionAuthMiddleware(db))

	secured.Put("/:id", func(c *fiber.Ctx) error {
		var input services.UpdateProfileInput
		if err := c.BodyParser(&input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON"})
		}
		if input.Name == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Name is required"})
		}

		user, err := userService.UpdateProfile(c.Context(), c.Params("id"), input)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrUserNotFound):
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
			case errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "duplicate"):
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Duplicate key error. Please ensure unique fields."})
			default:
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
			}
		}
		return c.JSON(fiber.Map{"message": "User updated successfully", "user": user})
	})

	secured.Post("/:id/avatar", func(c *fiber.Ctx) error {
		fileHeader, err := c.FormFile("avatar")
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "avatar file is required"})
		}

		key := fmt.Sprintf("avatars/%s%s", uuid.NewString(), filepath.Ext(fileHeader.Filename))
		url, err := utils.UploadToStorage(fileHeader, key)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "upload failed", "cause": err.Error()})
		}

		user, err := userService.SetAvatarURL(c.Context(), c.Params("id"), url)
		if err != nil {
			if errors.Is(err, services.ErrUserNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
		}
		return c.JSON(fiber.Map{"message": "Avatar updated", "avatar_url": user.AvatarURL})
	})

	// Public portfolio by slug handle. Read-only, persisted summaries only.
	app.Get("/api/portfolio/:handle", func(c *fiber.Ctx) error {
		portfolio, err := userService.GetPortfolio(c.Context(), c.Params("handle"))
		if err != nil {
			if errors.Is(err, services.ErrUserNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Portfolio not found"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
		}
		return c.JSON(portfolio)
	})
}
