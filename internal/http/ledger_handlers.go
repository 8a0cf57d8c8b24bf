package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/abhijitreddy-06/money-tracker/internal/apperr"
	"github.com/abhijitreddy-06/money-tracker/internal/domain"
	"github.com/abhijitreddy-06/money-tracker/internal/ledger"
	"github.com/abhijitreddy-06/money-tracker/internal/storage"
)

// LedgerHandler serves balance and record endpoints.
type LedgerHandler struct {
	Ledger  *ledger.Coordinator
	Records storage.RecordReader
	Timeout time.Duration
	// LegacyEmptyLists answers empty spend, lend and borrow lists with a
	// {message} object instead of [].
	LegacyEmptyLists bool
}

type writeResponse struct {
	Message string          `json:"message"`
	Balance decimal.Decimal `json:"balance"`
}

type checkBalanceResponse struct {
	HasBalance bool             `json:"hasBalance"`
	Balance    *decimal.Decimal `json:"balance,omitempty"`
}

func (h *LedgerHandler) SetBalance(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	var body balanceRequest
	if err := parseBody(c, &body); err != nil {
		return err
	}
	amount, err := requireAmount(body.Balance, "Balance is required")
	if err != nil {
		return err
	}

	ctx, cancel := requestContext(c, h.Timeout)
	defer cancel()
	balance, err := h.Ledger.SetBalance(ctx, userID, amount)
	if err != nil {
		return err
	}
	return c.JSON(writeResponse{Message: "Balance updated successfully", Balance: balance})
}

func (h *LedgerHandler) CheckBalance(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	ctx, cancel := requestContext(c, h.Timeout)
	defer cancel()

	balance, err := h.Records.Balance(ctx, userID)
	if errors.Is(err, storage.ErrNotFound) {
		return c.JSON(checkBalanceResponse{HasBalance: false})
	}
	if err != nil {
		return apperr.Wrap(apperr.CodeStorage, "Database error", err)
	}
	return c.JSON(checkBalanceResponse{HasBalance: true, Balance: &balance})
}

func (h *LedgerHandler) Spend(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	var body spendRequest
	if err := parseBody(c, &body); err != nil {
		return err
	}
	amount, err := requireAmount(body.Amount, "amount is required")
	if err != nil {
		return err
	}
	date, err := optionalDate("date", body.Date)
	if err != nil {
		return err
	}

	ctx, cancel := requestContext(c, h.Timeout)
	defer cancel()
	receipt, err := h.Ledger.RecordSpend(ctx, userID, ledger.SpendInput{
		Amount:  amount,
		ForWhat: body.ForWhat,
		Place:   body.Place,
		Date:    date,
	})
	if err != nil {
		return err
	}
	return c.JSON(writeResponse{Message: "Spend record added & balance updated successfully", Balance: receipt.Balance})
}

func (h *LedgerHandler) Lend(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	var body lendRequest
	if err := parseBody(c, &body); err != nil {
		return err
	}
	amount, err := requireAmount(body.Amount, "All fields are required")
	if err != nil {
		return err
	}
	returnDate, err := optionalDate("return_date", body.ReturnDate)
	if err != nil {
		return err
	}

	ctx, cancel := requestContext(c, h.Timeout)
	defer cancel()
	receipt, err := h.Ledger.RecordLend(ctx, userID, ledger.LendInput{
		Amount:     amount,
		ToWhom:     body.ToWhom,
		ReturnDate: returnDate,
	})
	if err != nil {
		return err
	}
	return c.JSON(writeResponse{Message: "Lend record added & balance updated successfully", Balance: receipt.Balance})
}

func (h *LedgerHandler) Borrow(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	var body borrowRequest
	if err := parseBody(c, &body); err != nil {
		return err
	}
	amount, err := requireAmount(body.Amount, "amount is required")
	if err != nil {
		return err
	}
	returnDate, err := optionalDate("return_date", body.ReturnDate)
	if err != nil {
		return err
	}

	ctx, cancel := requestContext(c, h.Timeout)
	defer cancel()
	receipt, err := h.Ledger.RecordBorrow(ctx, userID, ledger.BorrowInput{
		Amount:     amount,
		ForWhat:    body.ForWhat,
		FromWhom:   body.FromWhom,
		ReturnDate: returnDate,
	})
	if err != nil {
		return err
	}
	return c.JSON(writeResponse{Message: "Borrow recorded and balance updated successfully", Balance: receipt.Balance})
}

func (h *LedgerHandler) Deposit(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	var body depositRequest
	if err := parseBody(c, &body); err != nil {
		return err
	}
	amount, err := requireAmount(body.Amount, "amount is required")
	if err != nil {
		return err
	}
	date, err := optionalDate("date", body.Date)
	if err != nil {
		return err
	}

	ctx, cancel := requestContext(c, h.Timeout)
	defer cancel()
	receipt, err := h.Ledger.RecordDeposit(ctx, userID, ledger.DepositInput{
		Amount: amount,
		Source: body.FromWhom,
		Date:   date,
	})
	if err != nil {
		return err
	}
	return c.JSON(writeResponse{Message: "Deposit recorded and balance updated successfully", Balance: receipt.Balance})
}

var emptyListMessages = map[domain.Kind]string{
	domain.KindSpend:  "No spend records yet",
	domain.KindLend:   "No lend records yet",
	domain.KindBorrow: "No borrowed records yet",
}

func (h *LedgerHandler) ListSpends(c *fiber.Ctx) error {
	return h.list(c, domain.KindSpend)
}

func (h *LedgerHandler) ListLends(c *fiber.Ctx) error {
	return h.list(c, domain.KindLend)
}

func (h *LedgerHandler) ListBorrows(c *fiber.Ctx) error {
	return h.list(c, domain.KindBorrow)
}

func (h *LedgerHandler) ListDeposits(c *fiber.Ctx) error {
	return h.list(c, domain.KindDeposit)
}

func (h *LedgerHandler) list(c *fiber.Ctx, kind domain.Kind) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	ctx, cancel := requestContext(c, h.Timeout)
	defer cancel()

	var (
		rows any
		n    int
	)
	switch kind {
	case domain.KindSpend:
		list, lerr := h.Records.ListSpends(ctx, userID)
		rows, n, err = list, len(list), lerr
	case domain.KindLend:
		list, lerr := h.Records.ListLends(ctx, userID)
		rows, n, err = list, len(list), lerr
	case domain.KindBorrow:
		list, lerr := h.Records.ListBorrows(ctx, userID)
		rows, n, err = list, len(list), lerr
	default:
		list, lerr := h.Records.ListDeposits(ctx, userID)
		rows, n, err = list, len(list), lerr
	}
	if err != nil {
		return apperr.Wrap(apperr.CodeStorage, "Database error", err)
	}

	if n == 0 && h.LegacyEmptyLists {
		if msg, ok := emptyListMessages[kind]; ok {
			return c.JSON(fiber.Map{"message": msg})
		}
	}
	return c.JSON(rows)
}
