package middleware

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"ireporter-backend/internal/config"
	"ireporter-backend/internal/dto"
)

// ReportQuota caps how many reports a single user may file per reset window,
// counted in Redis with a TTL set on the first increment. Redis being down
// fails open so report filing never depends on the cache.
func ReportQuota(rdb *redis.Client, cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := ActorFromContext(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		key := "report-quota:" + actor.ID.String()
		ctx := c.Context()

		count, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			slog.Error("report quota check failed", "error", err, "user_id", actor.ID.String())
			return c.Next()
		}

		if count == 1 {
			if err := rdb.Expire(ctx, key, cfg.ReportQuotaReset).Err(); err != nil {
				slog.Error("report quota TTL set failed", "error", err)
			}
		}

		if count > int64(cfg.ReportQuota) {
			retryAfter, _ := rdb.TTL(ctx, key).Result()
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error":       true,
				"message":     "report limit reached, try again later",
				"retry_after": retryAfter.Seconds(),
			})
		}

		return c.Next()
	}
}
