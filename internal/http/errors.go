package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/abhijitreddy-06/money-tracker/internal/apperr"
)

const msgInternal = "Internal server error"

// ErrorHandler renders every error as {message}. Internal failures are
// logged with their cause and answered with a short message only.
func ErrorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := msgInternal

	var appErr *apperr.Error
	var fiberErr *fiber.Error
	switch {
	case errors.As(err, &appErr):
		status = appErr.Code.HTTPStatus()
		message = appErr.Message
		if appErr.Code.Internal() {
			log.Errorw("request failed",
				"request_id", c.Locals(LocalsRequestID),
				"method", c.Method(),
				"path", c.Path(),
				"code", string(appErr.Code),
				"error", err,
			)
		}
	case errors.As(err, &fiberErr):
		status = fiberErr.Code
		message = fiberErr.Message
	default:
		log.Errorw("unhandled error",
			"request_id", c.Locals(LocalsRequestID),
			"method", c.Method(),
			"path", c.Path(),
			"error", err,
		)
	}

	return c.Status(status).JSON(fiber.Map{"message": message})
}

// LocalsRequestID is the fiber.Ctx locals key holding the request id.
const LocalsRequestID = "request_id"
