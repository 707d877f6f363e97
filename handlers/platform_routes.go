// handlers/platform_routes.go
package handlers

import (
	"errors"

	"codefolio-backend/platforms"
	"codefolio-backend/services"

	"github.com/gofiber/fiber/v2"
)

// SetupPlatformRoutes exposes live per-platform lookups. Unlike the dashboard
// path, these surface upstream failures: 404 for unknown usernames, 502 for
// anything else the platform did wrong.
func SetupPlatformRoutes(app *fiber.App, leetcode services.LeetCodeFetcher, codeforces services.CodeforcesFetcher, codechef services.CodechefFetcher) {
	app.Get("/api/leetcode/stats/:username", func(c *fiber.Ctx) error {
		snapshot, err := leetcode.FetchStats(c.Context(), c.Params("username"))
		if err != nil {
			return platformError(c, err)
		}
		return c.JSON(fiber.Map{"data": snapshot})
	})

	app.Get("/api/codeforces/profile/:handle", func(c *fiber.Ctx) error {
		snapshot, err := codeforces.FetchProfile(c.Context(), c.Params("handle"))
		if err != nil {
			return platformError(c, err)
		}
		return c.JSON(snapshot)
	})

	app.Get("/api/codechef/profile/:username", func(c *fiber.Ctx) error {
		snapshot, err := codechef.FetchProfile(c.Context(), c.Params("username"))
		if err != nil {
			return platformError(c, err)
		}
		return c.JSON(snapshot)
	})
}

func platformError(c *fiber.Ctx, err error) error {
	if errors.Is(err, platforms.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
}
