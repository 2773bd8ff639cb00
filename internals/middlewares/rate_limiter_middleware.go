package middlewares

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"nojom_backend/internals/helpers/apperr"
)

// limiterStorage is shared by every limiter; nil keeps Fiber's in-memory store.
var limiterStorage fiber.Storage

// UseLimiterStorage swaps the backing store, e.g. for Redis. Call before building limiters.
func UseLimiterStorage(s fiber.Storage) {
	limiterStorage = s
}

func newLimiter(max int, window time.Duration, message string) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		Storage:    limiterStorage,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return apperr.New(http.StatusTooManyRequests, "TOO_MANY_REQUESTS", message)
		},
	})
}

// Global limiter for every API route
func GlobalRateLimiter() fiber.Handler {
	return newLimiter(120, time.Minute, "Too many requests. Please try again later.")
}

// Stricter limiter for login
func LoginRateLimiter() fiber.Handler {
	return newLimiter(5, time.Minute, "Too many login attempts. Please try again shortly.")
}

func RegisterRateLimiter() fiber.Handler {
	return newLimiter(3, 5*time.Minute, "Too many registration attempts. Please wait a few minutes.")
}

// Upload and import are heavier than ordinary CRUD.
func UploadRateLimiter() fiber.Handler {
	return newLimiter(20, time.Minute, "Too many uploads. Please try again later.")
}
