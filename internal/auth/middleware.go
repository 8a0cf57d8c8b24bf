package auth

import (
	"context"

	"github.com/gofiber/fiber/v2"
)

type ctxKey struct{}

const localsUserID = "user_id"

// Middleware rejects requests without a valid bearer token and stores the
// authenticated user id on the request for handlers.
func (m *TokenManager) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := m.Authenticate(c.Get(fiber.HeaderAuthorization))
		if err != nil {
			return err
		}
		c.Locals(localsUserID, userID)
		c.SetUserContext(WithUserID(c.UserContext(), userID))
		return c.Next()
	}
}

// UserID returns the id the middleware authenticated.
func UserID(c *fiber.Ctx) (int64, bool) {
	id, ok := c.Locals(localsUserID).(int64)
	return id, ok && id > 0
}

// WithUserID stores a user id in ctx.
func WithUserID(ctx context.Context, userID int64) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxKey{}, userID)
}

// UserIDFromContext returns the user id stored in ctx.
func UserIDFromContext(ctx context.Context) (int64, bool) {
	if ctx == nil {
		return 0, false
	}
	id, ok := ctx.Value(ctxKey{}).(int64)
	return id, ok
}
