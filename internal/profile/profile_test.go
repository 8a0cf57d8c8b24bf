package profile

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/abhijitreddy-06/money-tracker/internal/apperr"
	"github.com/abhijitreddy-06/money-tracker/internal/domain"
	"github.com/abhijitreddy-06/money-tracker/internal/ledger"
	"github.com/abhijitreddy-06/money-tracker/internal/storage/sqlite"
)

func TestGetCountsEachKind(t *testing.T) {
	ctx := context.Background()
	store, err := sqlite.Open(filepath.Join(t.TempDir(), "ledger.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	u, err := store.CreateUser(ctx, domain.User{Name: "Asha", Phone: "9222222222", PasswordHash: "digest"})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	c := ledger.NewCoordinator(store)
	if _, err := c.SetBalance(ctx, u.ID, decimal.NewFromInt(1000)); err != nil {
		t.Fatalf("set balance: %v", err)
	}
	if _, err := c.RecordDeposit(ctx, u.ID, ledger.DepositInput{Amount: decimal.NewFromInt(500), Source: "Salary"}); err != nil {
		t.Fatalf("deposit: %v", err)
	}
	for i := 0; i < 2; i++ {
		if _, err := c.RecordSpend(ctx, u.ID, ledger.SpendInput{Amount: decimal.NewFromInt(100), ForWhat: "Food", Date: time.Now()}); err != nil {
			t.Fatalf("spend: %v", err)
		}
	}
	if _, err := c.RecordBorrow(ctx, u.ID, ledger.BorrowInput{Amount: decimal.NewFromInt(10), FromWhom: "Bob", ReturnDate: time.Now()}); err != nil {
		t.Fatalf("borrow: %v", err)
	}

	p, err := NewAggregator(store).Get(ctx, u.ID)
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	want := Counts{Lend: 0, Spent: 2, Borrowed: 1, Deposit: 1}
	if p.Records != want {
		t.Fatalf("records = %+v, want %+v", p.Records, want)
	}
	if p.User.ID != u.ID || p.User.Name != "Asha" || p.User.Phone != "9222222222" {
		t.Fatalf("unexpected user: %+v", p.User)
	}
}

func TestGetUnknownUser(t *testing.T) {
	store, err := sqlite.Open(filepath.Join(t.TempDir(), "ledger.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	_, err = NewAggregator(store).Get(context.Background(), 404)
	if !apperr.HasCode(err, apperr.CodeUserNotFound) {
		t.Fatalf("expected user not found, got %v", err)
	}
}

type countFailure struct{}

func (countFailure) UserByID(_ context.Context, id int64) (domain.User, error) {
	return domain.User{ID: id, Name: "x", Phone: "1"}, nil
}

func (countFailure) CountRecords(_ context.Context, _ int64, kind domain.Kind) (int64, error) {
	if kind == domain.KindBorrow {
		return 0, errors.New("timeout")
	}
	return 3, nil
}

func TestGetCountFailure(t *testing.T) {
	_, err := NewAggregator(countFailure{}).Get(context.Background(), 1)
	if !apperr.HasCode(err, apperr.CodeStorage) {
		t.Fatalf("expected storage error, got %v", err)
	}
}
