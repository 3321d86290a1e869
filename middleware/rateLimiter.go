package middleware

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"
)

// LoginRateLimiter throttles authentication attempts per client IP.
type LoginRateLimiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.Mutex
	rate     rate.Limit
	burst    int
	ticker   *time.Ticker
}

// NewLoginRateLimiter allows attemptsPerMinute sustained login attempts per
// IP, with the given burst.
func NewLoginRateLimiter(attemptsPerMinute float64, burst int) *LoginRateLimiter {
	rl := &LoginRateLimiter{
		limiters: make(map[string]*rate.Limiter),
		rate:     rate.Limit(attemptsPerMinute / 60),
		burst:    burst,
		ticker:   time.NewTicker(10 * time.Minute),
	}
	go rl.cleanup()
	return rl
}

// cleanup periodically drops all limiters to keep the map from growing
// without bound.
func (rl *LoginRateLimiter) cleanup() {
	for range rl.ticker.C {
		rl.mu.Lock()
		rl.limiters = make(map[string]*rate.Limiter)
		rl.mu.Unlock()
	}
}

func (rl *LoginRateLimiter) limiterFor(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	limiter, ok := rl.limiters[ip]
	if !ok {
		limiter = rate.NewLimiter(rl.rate, rl.burst)
		rl.limiters[ip] = limiter
	}
	return limiter
}

// Handler rejects requests that exceed the per-IP budget.
func (rl *LoginRateLimiter) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !rl.limiterFor(c.IP()).Allow() {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"success": false,
				"code":    "RATE_LIMITED",
				"message": "Too many attempts. Try again later.",
			})
		}
		return c.Next()
	}
}
