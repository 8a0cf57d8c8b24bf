package router

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/abhijitreddy-06/money-tracker/internal/auth"
)

const msgTooManyRequests = "Too many requests, please try again later."

// RateLimitAuth limits register and login to max requests per minute per IP.
// A max of 0 disables the limit.
func RateLimitAuth(max int) fiber.Handler {
	if max <= 0 {
		return passThrough
	}
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: tooManyRequests,
	})
}

// RateLimitWrite limits ledger writes to max requests per minute per user,
// falling back to the client IP. It must run after the auth middleware.
func RateLimitWrite(max int) fiber.Handler {
	if max <= 0 {
		return passThrough
	}
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			if uid, ok := auth.UserID(c); ok {
				return "user:" + strconv.FormatInt(uid, 10)
			}
			return c.IP()
		},
		LimitReached: tooManyRequests,
	})
}

func tooManyRequests(c *fiber.Ctx) error {
	return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"message": msgTooManyRequests})
}
