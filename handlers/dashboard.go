// handlers/dashboard.go
package handlers

import (
	"codefolio-backend/services"

	"github.com/gofiber/fiber/v2"
)

func SetupDashboardRoutes(app *fiber.App, dashboardService *services.DashboardService, heatmapService *services.HeatmapService) {
	dash := app.Group("/api/dashboard")

	// The read path never fails: missing users and dead platforms both resolve
	// to default-valued summaries.
	dash.Get("/:id", func(c *fiber.Ctx) error {
		return c.JSON(dashboardService.GetDashboardData(c.Context(), c.Params("id")))
	})

	dash.Post("/:id/contest-ranking", func(c *fiber.Ctx) error {
		var fields map[string]any
		if err := c.BodyParser(&fields); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON"})
		}
		result, err := dashboardService.UpsertContestRankingInfo(c.Context(), c.Params("id"), fields)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(result)
	})

	dash.Post("/:id/total-questions", func(c *fiber.Ctx) error {
		var fields map[string]any
		if err := c.BodyParser(&fields); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON"})
		}
		result, err := dashboardService.UpsertTotalQuestions(c.Context(), c.Params("id"), fields)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(result)
	})

	// Submission activity, same tolerance policy as the dashboard itself.
	app.Get("/api/dash/heatmap/:id", func(c *fiber.Ctx) error {
		return c.JSON(heatmapService.GetActivity(c.Context(), c.Params("id")))
	})
}
