package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"

	redispkg "todo-api/infrastructure/redis"
	"todo-api/pkg/logger"
	"todo-api/pkg/utils"
)

// RateLimiter enforces a fixed window per client IP backed by Redis. A nil
// client disables limiting; a Redis failure lets the request through rather
// than failing closed.
func RateLimiter(client *redispkg.Client, max int, window time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if client == nil || max <= 0 {
			return c.Next()
		}

		key := "ratelimit:" + c.IP()
		count, err := client.IncrWindow(c.UserContext(), key, window)
		if err != nil {
			logger.WarnContext(c.UserContext(), "Rate limiter unavailable", "error", err)
			return c.Next()
		}

		if count > int64(max) {
			return utils.TooManyRequestsResponse(c)
		}

		return c.Next()
	}
}
