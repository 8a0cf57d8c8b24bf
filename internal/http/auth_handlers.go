package http

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/abhijitreddy-06/money-tracker/internal/apperr"
	"github.com/abhijitreddy-06/money-tracker/internal/auth"
	"github.com/abhijitreddy-06/money-tracker/internal/domain"
	"github.com/abhijitreddy-06/money-tracker/internal/storage"
)

type AuthHandler struct {
	Users     storage.UserStore
	Passwords auth.PasswordHasher
	Tokens    *auth.TokenManager
	Timeout   time.Duration
}

type loginResponse struct {
	Message string            `json:"message"`
	Token   string            `json:"token"`
	User    domain.PublicUser `json:"user"`
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var body registerRequest
	if err := parseBody(c, &body); err != nil {
		return err
	}
	body.Name = strings.TrimSpace(body.Name)
	body.Phone = strings.TrimSpace(body.Phone)
	if body.Name == "" || body.Phone == "" || body.Password == "" {
		return apperr.New(apperr.CodeValidation, "Name, phone and password are required")
	}

	digest, err := h.Passwords.Hash(body.Password)
	if err != nil {
		return apperr.Wrap(apperr.CodeUnknown, "Registration failed", err)
	}

	ctx, cancel := requestContext(c, h.Timeout)
	defer cancel()
	_, err = h.Users.CreateUser(ctx, domain.User{Name: body.Name, Phone: body.Phone, PasswordHash: digest})
	if errors.Is(err, storage.ErrConflict) {
		return apperr.Wrap(apperr.CodeConflict, "Phone number is already registered", err)
	}
	if err != nil {
		return apperr.Wrap(apperr.CodeStorage, "Registration failed", err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "User registered successfully"})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var body loginRequest
	if err := parseBody(c, &body); err != nil {
		return err
	}
	body.Phone = strings.TrimSpace(body.Phone)
	if body.Phone == "" || body.Password == "" {
		return apperr.New(apperr.CodeValidation, "Phone and password are required")
	}

	ctx, cancel := requestContext(c, h.Timeout)
	defer cancel()
	user, err := h.Users.UserByPhone(ctx, body.Phone)
	if errors.Is(err, storage.ErrNotFound) {
		return apperr.New(apperr.CodeUserNotFound, "User not found. Please create an account.")
	}
	if err != nil {
		return apperr.Wrap(apperr.CodeStorage, "Login failed", err)
	}
	if !h.Passwords.Verify(user.PasswordHash, body.Password) {
		return apperr.New(apperr.CodeInvalidCredentials, "Invalid password")
	}

	token, _, err := h.Tokens.Issue(user.ID)
	if err != nil {
		return apperr.Wrap(apperr.CodeUnknown, "Login failed", err)
	}

	return c.JSON(loginResponse{
		Message: "Login successful",
		Token:   token,
		User:    user.Public(),
	})
}
