package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/abhijitreddy-06/money-tracker/internal/apperr"
)

func newTestApp(m *TokenManager) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var e *apperr.Error
			if errors.As(err, &e) {
				return c.Status(e.Code.HTTPStatus()).JSON(fiber.Map{"message": e.Message})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		},
	})
	app.Get("/me", m.Middleware(), func(c *fiber.Ctx) error {
		id, ok := UserID(c)
		ctxID, ctxOK := UserIDFromContext(c.UserContext())
		if !ok || !ctxOK || id != ctxID {
			return c.SendStatus(fiber.StatusInternalServerError)
		}
		return c.JSON(fiber.Map{"userid": id})
	})
	return app
}

func TestMiddleware(t *testing.T) {
	m := NewTokenManager(testSecret, time.Hour)
	token, _, err := m.Issue(5)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	app := newTestApp(m)

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{name: "ok", header: "Bearer " + token, wantStatus: http.StatusOK},
		{name: "missing", header: "", wantStatus: http.StatusUnauthorized},
		{name: "tampered", header: "Bearer " + token + "x", wantStatus: http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req, -1)
			if err != nil {
				t.Fatalf("request: %v", err)
			}
			defer resp.Body.Close()
			if resp.StatusCode != tt.wantStatus {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
			var body map[string]any
			if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if tt.wantStatus == http.StatusOK {
				if body["userid"] != float64(5) {
					t.Fatalf("body = %v", body)
				}
			} else if body["message"] == "" || body["message"] == nil {
				t.Fatalf("expected message, got %v", body)
			}
		})
	}
}

func TestUserIDFromContextNil(t *testing.T) {
	if _, ok := UserIDFromContext(nil); ok {
		t.Fatal("expected no user id for nil context")
	}
}
