// Package storage defines the persistence contracts shared by the Postgres
// and SQLite ledger stores.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/abhijitreddy-06/money-tracker/internal/domain"
)

var (
	// ErrNotFound indicates a requested row is missing.
	ErrNotFound = errors.New("record not found")
	// ErrConflict indicates a uniqueness violation, e.g. a phone already registered.
	ErrConflict = errors.New("record already exists")
)

// UserStore persists accounts.
type UserStore interface {
	CreateUser(ctx context.Context, u domain.User) (domain.User, error)
	UserByPhone(ctx context.Context, phone string) (domain.User, error)
	UserByID(ctx context.Context, id int64) (domain.User, error)
}

// RecordReader lists and counts ledger records. Lists are newest first:
// spends by spend date, deposits by deposit date, lends and borrows by
// creation time.
type RecordReader interface {
	Balance(ctx context.Context, userID int64) (decimal.Decimal, error)
	ListSpends(ctx context.Context, userID int64) ([]domain.SpendRecord, error)
	ListLends(ctx context.Context, userID int64) ([]domain.LendRecord, error)
	ListBorrows(ctx context.Context, userID int64) ([]domain.BorrowRecord, error)
	ListDeposits(ctx context.Context, userID int64) ([]domain.DepositRecord, error)
	CountRecords(ctx context.Context, userID int64, kind domain.Kind) (int64, error)
}

// Tx is a unit of work on the ledger. It is only valid inside the function
// passed to Transactor.InTx.
type Tx interface {
	// LockBalance reads the balance row and holds a write lock on it until
	// the transaction ends. Returns ErrNotFound when the row does not exist.
	LockBalance(ctx context.Context, userID int64) (decimal.Decimal, error)
	// UpsertBalance inserts or overwrites the balance row keyed by user id.
	UpsertBalance(ctx context.Context, userID int64, amount decimal.Decimal) error
	// WriteBalance overwrites an existing balance row. Returns ErrNotFound
	// when no row was updated.
	WriteBalance(ctx context.Context, userID int64, amount decimal.Decimal) error

	InsertSpend(ctx context.Context, r *domain.SpendRecord) error
	InsertLend(ctx context.Context, r *domain.LendRecord) error
	InsertBorrow(ctx context.Context, r *domain.BorrowRecord) error
	InsertDeposit(ctx context.Context, r *domain.DepositRecord) error
}

// Transactor runs fn inside one all-or-nothing transaction. The transaction
// commits when fn returns nil and rolls back on error, panic, or context
// cancellation.
type Transactor interface {
	InTx(ctx context.Context, fn func(tx Tx) error) error
}

// Store is the full ledger store.
type Store interface {
	UserStore
	RecordReader
	Transactor

	// Now returns the database clock; used as a liveness probe.
	Now(ctx context.Context) (time.Time, error)
	Close() error
}
