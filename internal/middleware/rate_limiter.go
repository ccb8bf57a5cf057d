package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// RateLimit describes a token bucket per client IP.
type RateLimit struct {
	PerSecond float64
	Burst     int
	ExpiresIn time.Duration
}

// DefaultRateLimit allows short bursts of clicking on the game actions.
var DefaultRateLimit = RateLimit{PerSecond: 5, Burst: 10, ExpiresIn: 3 * time.Minute}

// RateLimiter creates a rate limiter middleware keyed by the client's real IP.
func RateLimiter(limit RateLimit) echo.MiddlewareFunc {
	config := middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(limit.PerSecond),
			Burst:     limit.Burst,
			ExpiresIn: limit.ExpiresIn,
		}),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return c.String(http.StatusTooManyRequests, "Too many requests. Please try again later.")
		},
	}
	return middleware.RateLimiterWithConfig(config)
}
