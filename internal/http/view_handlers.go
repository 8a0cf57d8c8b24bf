package http

import (
	"bytes"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/abhijitreddy-06/money-tracker/internal/apperr"
	"github.com/abhijitreddy-06/money-tracker/internal/domain"
	"github.com/abhijitreddy-06/money-tracker/internal/history"
	"github.com/abhijitreddy-06/money-tracker/internal/profile"
	"github.com/abhijitreddy-06/money-tracker/internal/storage"
)

// ViewHandler serves the read-only aggregate views.
type ViewHandler struct {
	History *history.Aggregator
	Profile *profile.Aggregator
	Records storage.RecordReader
	Timeout time.Duration
	Now     func() time.Time
}

func (h *ViewHandler) Home(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "This is a protected route",
		"user":    fiber.Map{"userid": userID},
	})
}

func (h *ViewHandler) GetHistory(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	ctx, cancel := requestContext(c, h.Timeout)
	defer cancel()

	entries, err := h.History.Entries(ctx, userID)
	if err != nil {
		return apperr.Wrap(apperr.CodeStorage, "Database error", err)
	}
	return c.JSON(entries)
}

func (h *ViewHandler) GetProfile(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	ctx, cancel := requestContext(c, h.Timeout)
	defer cancel()

	p, err := h.Profile.Get(ctx, userID)
	if err != nil {
		return err
	}
	return c.JSON(p)
}

// Statement renders the history as a PDF, optionally limited to the
// from/to query range (YYYY-MM-DD, inclusive).
func (h *ViewHandler) Statement(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	from, err := queryDay(c, "from")
	if err != nil {
		return err
	}
	to, err := queryDay(c, "to")
	if err != nil {
		return err
	}
	if !from.IsZero() && !to.IsZero() && to.Before(from) {
		return apperr.New(apperr.CodeValidation, "from must not be after to")
	}

	ctx, cancel := requestContext(c, h.Timeout)
	defer cancel()

	p, err := h.Profile.Get(ctx, userID)
	if err != nil {
		return err
	}
	balance, err := h.Records.Balance(ctx, userID)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return apperr.Wrap(apperr.CodeStorage, "Database error", err)
	}
	entries, err := h.History.Entries(ctx, userID)
	if err != nil {
		return apperr.Wrap(apperr.CodeStorage, "Database error", err)
	}

	now := time.Now
	if h.Now != nil {
		now = h.Now
	}
	var buf bytes.Buffer
	stmt := history.Statement{
		User:        p.User,
		Balance:     balance,
		From:        from,
		To:          to,
		Entries:     history.Between(entries, from, to),
		GeneratedAt: now(),
	}
	if err := stmt.WritePDF(&buf); err != nil {
		return apperr.Wrap(apperr.CodeUnknown, "Could not build statement", err)
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+statementFilename(from, to)+`"`)
	return c.Send(buf.Bytes())
}

func queryDay(c *fiber.Ctx, key string) (time.Time, error) {
	v := strings.TrimSpace(c.Query(key))
	if v == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(domain.DateLayout, v)
	if err != nil {
		return time.Time{}, apperr.New(apperr.CodeValidation, key+" must be YYYY-MM-DD")
	}
	return t, nil
}

func statementFilename(from, to time.Time) string {
	name := "statement"
	if !from.IsZero() {
		name += "-from-" + from.Format(domain.DateLayout)
	}
	if !to.IsZero() {
		name += "-to-" + to.Format(domain.DateLayout)
	}
	return name + ".pdf"
}
