package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

// Pinger reports the database clock.
type Pinger interface {
	Now(ctx context.Context) (time.Time, error)
}

type HealthHandler struct {
	DB      Pinger
	Timeout time.Duration
}

func (h *HealthHandler) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "Backend is alive"})
}

func (h *HealthHandler) Database(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c, h.Timeout)
	defer cancel()

	now, err := h.DB.Now(ctx)
	if err != nil {
		log.Errorw("database health check failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status": "error",
			"error":  err.Error(),
		})
	}
	return c.JSON(fiber.Map{"status": "ok", "time": now})
}
