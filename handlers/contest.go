// handlers/contest.go
package handlers

import (
	"codefolio-backend/services"

	"github.com/gofiber/fiber/v2"
)

func SetupContestRoutes(app *fiber.App, contestService *services.ContestService) {
	app.Get("/api/contests/upcoming", func(c *fiber.Ctx) error {
		contests, err := contestService.GetUpcoming(c.Context())
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load contests",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"contests": contests})
	})
}
