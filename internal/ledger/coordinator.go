// Package ledger records money movements. Every operation inserts its record
// and moves the user's balance inside one transaction, holding the balance
// row lock for the whole read-modify-write.
package ledger

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/abhijitreddy-06/money-tracker/internal/apperr"
	"github.com/abhijitreddy-06/money-tracker/internal/domain"
	"github.com/abhijitreddy-06/money-tracker/internal/money"
	"github.com/abhijitreddy-06/money-tracker/internal/storage"
)

const (
	MsgBalanceNotFound   = "User balance record not found"
	MsgAmountNotPositive = "Amount must be a positive number"
	MsgAmountInvalid     = "Amount must be a valid number"
	MsgBalanceRange      = "Resulting balance is out of range"
	MsgTransactionFailed = "Transaction failed"
	MsgDatabaseError     = "Database error"
)

// SpendInput describes money spent.
type SpendInput struct {
	Amount  decimal.Decimal
	ForWhat string
	Place   string
	Date    time.Time
}

// LendInput describes money lent to someone.
type LendInput struct {
	Amount     decimal.Decimal
	ToWhom     string
	ReturnDate time.Time
}

// BorrowInput describes money borrowed from someone.
type BorrowInput struct {
	Amount     decimal.Decimal
	ForWhat    string
	FromWhom   string
	ReturnDate time.Time
}

// DepositInput describes income. A zero Date means today.
type DepositInput struct {
	Amount decimal.Decimal
	Source string
	Date   time.Time
}

// Receipt reports a committed ledger operation.
type Receipt struct {
	Kind     domain.Kind
	RecordID int64
	Balance  decimal.Decimal
}

// Coordinator is the only writer of balance rows.
type Coordinator struct {
	store storage.Transactor
	now   func() time.Time
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithClock overrides the clock used for default dates.
func WithClock(now func() time.Time) Option {
	return func(c *Coordinator) {
		if now != nil {
			c.now = now
		}
	}
}

func NewCoordinator(store storage.Transactor, opts ...Option) *Coordinator {
	c := &Coordinator{store: store, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetBalance overwrites the user's balance, creating the row on first use.
// It writes no record.
func (c *Coordinator) SetBalance(ctx context.Context, userID int64, amount decimal.Decimal) (decimal.Decimal, error) {
	amount, err := money.Normalize(amount)
	if err != nil {
		return decimal.Zero, apperr.Wrap(apperr.CodeInvalidAmount, MsgAmountInvalid, err)
	}
	err = c.store.InTx(ctx, func(tx storage.Tx) error {
		if err := tx.UpsertBalance(ctx, userID, amount); err != nil {
			return apperr.Wrap(apperr.CodeStorage, MsgDatabaseError, err)
		}
		return nil
	})
	if err != nil {
		return decimal.Zero, txErr(err)
	}
	return amount, nil
}

// RecordSpend inserts a spend record and decreases the balance by its amount.
func (c *Coordinator) RecordSpend(ctx context.Context, userID int64, in SpendInput) (Receipt, error) {
	rec := domain.SpendRecord{
		UserID:    userID,
		ForWhat:   strings.TrimSpace(in.ForWhat),
		Place:     strings.TrimSpace(in.Place),
		SpendDate: in.Date,
	}
	if rec.ForWhat == "" {
		return Receipt{}, validation("for_what is required")
	}
	if rec.SpendDate.IsZero() {
		return Receipt{}, validation("date is required")
	}
	return c.apply(ctx, userID, domain.KindSpend, in.Amount, func(amount decimal.Decimal, tx storage.Tx) (int64, error) {
		rec.Amount = amount
		err := tx.InsertSpend(ctx, &rec)
		return rec.ID, err
	})
}

// RecordLend inserts a lend record and decreases the balance by its amount.
func (c *Coordinator) RecordLend(ctx context.Context, userID int64, in LendInput) (Receipt, error) {
	rec := domain.LendRecord{
		UserID:     userID,
		ToWhom:     strings.TrimSpace(in.ToWhom),
		ReturnDate: in.ReturnDate,
	}
	if rec.ToWhom == "" || rec.ReturnDate.IsZero() {
		return Receipt{}, validation("All fields are required")
	}
	return c.apply(ctx, userID, domain.KindLend, in.Amount, func(amount decimal.Decimal, tx storage.Tx) (int64, error) {
		rec.Amount = amount
		err := tx.InsertLend(ctx, &rec)
		return rec.ID, err
	})
}

// RecordBorrow inserts a borrow record and increases the balance by its amount.
func (c *Coordinator) RecordBorrow(ctx context.Context, userID int64, in BorrowInput) (Receipt, error) {
	rec := domain.BorrowRecord{
		UserID:     userID,
		ForWhat:    strings.TrimSpace(in.ForWhat),
		FromWhom:   strings.TrimSpace(in.FromWhom),
		ReturnDate: in.ReturnDate,
	}
	if rec.FromWhom == "" {
		return Receipt{}, validation("from_whom is required")
	}
	if rec.ReturnDate.IsZero() {
		return Receipt{}, validation("return_date is required")
	}
	return c.apply(ctx, userID, domain.KindBorrow, in.Amount, func(amount decimal.Decimal, tx storage.Tx) (int64, error) {
		rec.Amount = amount
		err := tx.InsertBorrow(ctx, &rec)
		return rec.ID, err
	})
}

// RecordDeposit inserts a deposit record and increases the balance by its amount.
func (c *Coordinator) RecordDeposit(ctx context.Context, userID int64, in DepositInput) (Receipt, error) {
	rec := domain.DepositRecord{
		UserID:      userID,
		Source:      strings.TrimSpace(in.Source),
		DepositDate: in.Date,
	}
	if rec.Source == "" {
		return Receipt{}, validation("fromWhom is required")
	}
	if rec.DepositDate.IsZero() {
		rec.DepositDate = c.now().UTC()
	}
	return c.apply(ctx, userID, domain.KindDeposit, in.Amount, func(amount decimal.Decimal, tx storage.Tx) (int64, error) {
		rec.Amount = amount
		err := tx.InsertDeposit(ctx, &rec)
		return rec.ID, err
	})
}

type insertFunc func(amount decimal.Decimal, tx storage.Tx) (int64, error)

// apply locks the balance row, inserts the record and writes the new
// balance. Any failure rolls back all three.
func (c *Coordinator) apply(ctx context.Context, userID int64, kind domain.Kind, amount decimal.Decimal, insert insertFunc) (Receipt, error) {
	amount, err := money.Normalize(amount)
	if err != nil {
		return Receipt{}, apperr.Wrap(apperr.CodeInvalidAmount, MsgAmountInvalid, err)
	}
	if !amount.IsPositive() {
		return Receipt{}, apperr.New(apperr.CodeInvalidAmount, MsgAmountNotPositive)
	}

	receipt := Receipt{Kind: kind}
	err = c.store.InTx(ctx, func(tx storage.Tx) error {
		current, err := tx.LockBalance(ctx, userID)
		if errors.Is(err, storage.ErrNotFound) {
			return apperr.New(apperr.CodeBalanceNotFound, MsgBalanceNotFound)
		}
		if err != nil {
			return apperr.Wrap(apperr.CodeStorage, MsgDatabaseError, err)
		}

		next, err := money.Normalize(current.Add(kind.Delta(amount)))
		if err != nil {
			return apperr.Wrap(apperr.CodeInvalidAmount, MsgBalanceRange, err)
		}

		id, err := insert(amount, tx)
		if err != nil {
			return apperr.Wrap(apperr.CodeStorage, MsgDatabaseError, err)
		}
		if err := tx.WriteBalance(ctx, userID, next); err != nil {
			return apperr.Wrap(apperr.CodeTransactionFailed, MsgTransactionFailed, err)
		}

		receipt.RecordID = id
		receipt.Balance = next
		return nil
	})
	if err != nil {
		return Receipt{}, txErr(err)
	}
	return receipt, nil
}

func validation(msg string) error {
	return apperr.New(apperr.CodeValidation, msg)
}

// txErr classifies failures raised by the transaction itself (begin,
// commit, cancellation) that fn did not already classify.
func txErr(err error) error {
	var e *apperr.Error
	if errors.As(err, &e) {
		return err
	}
	return apperr.Wrap(apperr.CodeTransactionFailed, MsgTransactionFailed, err)
}
