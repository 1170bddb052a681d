package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"alfredoptarigan/candidate-screener/internal/models"
)

// RateLimiter caps model-backed requests per client IP.
func RateLimiter(max int, expiration time.Duration) fiber.Handler {
	if max <= 0 {
		max = 10
	}
	if expiration <= 0 {
		expiration = time.Minute
	}
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: expiration,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(models.ErrorResponse{
				Error: "too many requests, please try again later",
				Code:  fiber.StatusTooManyRequests,
			})
		},
		LimiterMiddleware: limiter.SlidingWindow{},
	})
}
