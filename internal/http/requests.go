package http

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/abhijitreddy-06/money-tracker/internal/apperr"
	"github.com/abhijitreddy-06/money-tracker/internal/auth"
	"github.com/abhijitreddy-06/money-tracker/internal/domain"
	"github.com/abhijitreddy-06/money-tracker/internal/money"
)

type registerRequest struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type loginRequest struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type balanceRequest struct {
	Balance decimal.NullDecimal `json:"balance"`
}

type spendRequest struct {
	Amount  decimal.NullDecimal `json:"amount"`
	ForWhat string              `json:"for_what"`
	Place   string              `json:"place"`
	Date    string              `json:"date"`
}

type lendRequest struct {
	Amount     decimal.NullDecimal `json:"amount"`
	ToWhom     string              `json:"to_whom"`
	ReturnDate string              `json:"return_date"`
}

type borrowRequest struct {
	Amount     decimal.NullDecimal `json:"amount"`
	ForWhat    string              `json:"for_what"`
	FromWhom   string              `json:"from_whom"`
	ReturnDate string              `json:"return_date"`
}

type depositRequest struct {
	Amount   decimal.NullDecimal `json:"amount"`
	FromWhom string              `json:"fromWhom"`
	Date     string              `json:"date"`
}

func parseBody(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return apperr.Wrap(apperr.CodeValidation, "Invalid request body", err)
	}
	return nil
}

// requireAmount unwraps a decoded amount; positivity is checked by the ledger.
func requireAmount(d decimal.NullDecimal, missing string) (decimal.Decimal, error) {
	v, err := money.Required(d)
	switch {
	case errors.Is(err, money.ErrMissing):
		return decimal.Zero, apperr.New(apperr.CodeValidation, missing)
	case err != nil:
		return decimal.Zero, apperr.Wrap(apperr.CodeInvalidAmount, "Amount must be a valid number", err)
	}
	return v, nil
}

// optionalDate parses a date field; blank yields the zero time.
func optionalDate(field, value string) (time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return time.Time{}, nil
	}
	t, err := domain.ParseDate(value)
	if err != nil {
		return time.Time{}, apperr.Wrap(apperr.CodeValidation, field+" must be YYYY-MM-DD or an ISO timestamp", err)
	}
	return t, nil
}

func currentUser(c *fiber.Ctx) (int64, error) {
	id, ok := auth.UserID(c)
	if !ok {
		return 0, apperr.New(apperr.CodeUnauthenticated, auth.MsgHeaderMissing)
	}
	return id, nil
}

// requestContext bounds store work by the request deadline.
func requestContext(c *fiber.Ctx, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(c.UserContext())
	}
	return context.WithTimeout(c.UserContext(), timeout)
}
