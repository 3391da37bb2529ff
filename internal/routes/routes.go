package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"ireporter-backend/internal/config"
	"ireporter-backend/internal/handlers"
	"ireporter-backend/internal/middleware"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	rdb *redis.Client,
	authHandler *handlers.AuthHandler,
	reportHandler *handlers.ReportHandler,
	healthHandler *handlers.HealthHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Auth — public, with a stricter limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/signup", authHandler.Signup)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)

	// Protected auth routes
	api.Post("/auth/logout", middleware.JWTProtected(cfg), authHandler.Logout)
	api.Get("/auth/me", middleware.JWTProtected(cfg), authHandler.Profile)

	// Reports (all protected)
	reports := api.Group("/reports", middleware.JWTProtected(cfg))

	createHandlers := []fiber.Handler{}
	if rdb != nil {
		createHandlers = append(createHandlers, middleware.ReportQuota(rdb, cfg))
	}
	createHandlers = append(createHandlers, reportHandler.Create)
	reports.Post("/", createHandlers...)

	reports.Get("/", reportHandler.List)
	reports.Get("/:id", reportHandler.Get)
	reports.Patch("/:id", reportHandler.Update)
	reports.Delete("/:id", reportHandler.Delete)

	// Admin status transitions
	admin := api.Group("/admin", middleware.JWTProtected(cfg), middleware.AdminRequired(db, cfg))
	admin.Patch("/reports/:id/status", reportHandler.ChangeStatus)
}
