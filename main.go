package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"codefolio-backend/handlers"
	"codefolio-backend/models"
	"codefolio-backend/services"
	"codefolio-backend/utils"
	"codefolio-backend/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 10 * 1024 * 1024, // 10MB, avatars only
	})

	// Load allowed origins from environment variable
	allowedOriginsEnv := os.Getenv("ALLOWED_ORIGINS")
	if allowedOriginsEnv == "" {
		log.Println("⚠️  ALLOWED_ORIGINS environment variable not set, using default: http://localhost:5173")
		allowedOriginsEnv = "http://localhost:5173"
	}
	allowedOriginsList := strings.Split(allowedOriginsEnv, ",")
	for i, origin := range allowedOriginsList {
		allowedOriginsList[i] = strings.TrimSpace(origin)
	}
	allowedOriginsString := strings.Join(allowedOriginsList, ",")

	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOriginsString,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH,HEAD",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With",
		ExposeHeaders:    "Content-Length, Content-Type, Authorization",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	storageEnabled, err := utils.InitStorage()
	if err != nil {
		log.Fatal("failed to initialize object storage:", err)
	}
	if !storageEnabled {
		log.Println("⚠️  R2 env vars not set, avatar uploads disabled")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.TotalQuestionsSummary{},
		&models.ContestRankingSummary{},
		&models.UpcomingContest{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	userService := services.NewUserService(db)
	dashboardService := services.NewDashboardService(db, userService)
	heatmapService := services.NewHeatmapService(userService, dashboardService.LeetCode, dashboardService.Codeforces)
	contestService := services.NewContestService(db)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go workers.PollContests(ctx, contestService, 30*time.Minute)

	statsWorker := workers.NewStatsRefreshWorker(userService, dashboardService, 6*time.Hour)
	statsWorker.Start(ctx)

	handlers.SetupAuthRoutes(app, userService, db)
	handlers.SetupProfileRoutes(app, userService, db)
	handlers.SetupDashboardRoutes(app, dashboardService, heatmapService)
	handlers.SetupPlatformRoutes(app, dashboardService.LeetCode, dashboardService.Codeforces, dashboardService.Codechef)
	handlers.SetupContestRoutes(app, contestService)

	app.Get("/api/health", func(c *fiber.Ctx) error {
		env := os.Getenv("APP_ENV")
		if env == "" {
			env = "development"
		}
		return c.JSON(fiber.Map{"status": "healthy", "environment": env})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}

	go func() {
		if err := app.Listen(":" + port); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("✅ Server running on http://localhost:%s", port)
	log.Println("✅ Contest sync polling running (every 30m)")
	log.Println("✅ Stats refresh worker running (every 6h)")
	log.Printf("✅ CORS configured for origins: %s", allowedOriginsString)

	<-ctx.Done()
	log.Println("Shutting down server...")
	_ = app.Shutdown()
}
