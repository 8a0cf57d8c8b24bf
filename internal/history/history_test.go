package history

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/abhijitreddy-06/money-tracker/internal/domain"
	"github.com/abhijitreddy-06/money-tracker/internal/ledger"
	"github.com/abhijitreddy-06/money-tracker/internal/storage"
	"github.com/abhijitreddy-06/money-tracker/internal/storage/sqlite"
)

func date(s string) time.Time {
	t, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestMergeOrdersNewestFirst(t *testing.T) {
	now := date("2024-03-01")
	created := date("2024-01-03")
	entries := Merge(
		[]domain.SpendRecord{{Amount: decimal.NewFromInt(200), ForWhat: "Groceries", Place: "Market", SpendDate: date("2024-01-01")}},
		[]domain.LendRecord{{Amount: decimal.NewFromInt(50), ToWhom: "Alice", ReturnDate: date("2024-12-31"), CreatedAt: &created}},
		[]domain.BorrowRecord{{Amount: decimal.NewFromInt(70), FromWhom: "Bob", ReturnDate: date("2024-06-30")}},
		[]domain.DepositRecord{{Amount: decimal.NewFromInt(500), Source: "Salary", DepositDate: date("2024-01-05")}},
		now,
	)

	wantTypes := []string{TypeBorrowed, TypeDeposit, TypeLent, TypeSpent}
	if len(entries) != len(wantTypes) {
		t.Fatalf("entries = %d, want %d", len(entries), len(wantTypes))
	}
	for i, typ := range wantTypes {
		if entries[i].Type != typ {
			t.Fatalf("entry %d type = %s, want %s", i, entries[i].Type, typ)
		}
	}

	borrowed := entries[0]
	if !borrowed.Date.Equal(now) {
		t.Fatalf("borrow without created_at dated %v, want %v", borrowed.Date, now)
	}
	if borrowed.Details == nil || *borrowed.Details != "Due by 2024-06-30" {
		t.Fatalf("unexpected borrow details: %v", borrowed.Details)
	}
	if d := entries[1].Details; d != nil {
		t.Fatalf("deposit details = %q, want nil", *d)
	}
	if d := entries[2].Details; d == nil || *d != "Return by 2024-12-31" {
		t.Fatalf("unexpected lend details: %v", d)
	}
	spent := entries[3]
	if spent.Description != "Groceries" || spent.Details == nil || *spent.Details != "Market" {
		t.Fatalf("unexpected spend entry: %+v", spent)
	}
}

func TestMergeSpendWithoutPlace(t *testing.T) {
	entries := Merge([]domain.SpendRecord{{Amount: decimal.NewFromInt(1), ForWhat: "Tea", SpendDate: date("2024-01-01")}}, nil, nil, nil, time.Now())
	if len(entries) != 1 || entries[0].Details != nil {
		t.Fatalf("unexpected entries: %+v", entries)
	}
}

func TestMergeKeepsKindOrderOnTies(t *testing.T) {
	same := date("2024-02-02")
	entries := Merge(
		[]domain.SpendRecord{{Amount: decimal.NewFromInt(1), ForWhat: "a", SpendDate: same}},
		nil,
		nil,
		[]domain.DepositRecord{{Amount: decimal.NewFromInt(2), Source: "b", DepositDate: same}},
		time.Now(),
	)
	if entries[0].Type != TypeSpent || entries[1].Type != TypeDeposit {
		t.Fatalf("unexpected tie order: %s, %s", entries[0].Type, entries[1].Type)
	}
}

func TestMergeEmpty(t *testing.T) {
	entries := Merge(nil, nil, nil, nil, time.Now())
	if entries == nil || len(entries) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", entries)
	}
}

func TestBetweenAndTotals(t *testing.T) {
	entries := []Entry{
		{Type: TypeDeposit, Amount: decimal.NewFromInt(500), Date: date("2024-01-05")},
		{Type: TypeBorrowed, Amount: decimal.NewFromInt(100), Date: date("2024-01-04").Add(23 * time.Hour)},
		{Type: TypeSpent, Amount: decimal.NewFromInt(200), Date: date("2024-01-01")},
		{Type: TypeLent, Amount: decimal.NewFromInt(30), Date: date("2023-12-31")},
	}

	got := Between(entries, date("2024-01-01"), date("2024-01-04"))
	if len(got) != 2 || got[0].Type != TypeBorrowed || got[1].Type != TypeSpent {
		t.Fatalf("unexpected filtered entries: %+v", got)
	}
	if len(Between(entries, time.Time{}, time.Time{})) != len(entries) {
		t.Fatal("open bounds should keep everything")
	}

	in, out := Totals(entries)
	if !in.Equal(decimal.NewFromInt(600)) || !out.Equal(decimal.NewFromInt(230)) {
		t.Fatalf("totals = %s in, %s out", in, out)
	}
}

func TestAggregatorEntries(t *testing.T) {
	ctx := context.Background()
	store, err := sqlite.Open(filepath.Join(t.TempDir(), "ledger.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	u, err := store.CreateUser(ctx, domain.User{Name: "Asha", Phone: "9111111111", PasswordHash: "digest"})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	c := ledger.NewCoordinator(store)
	if _, err := c.SetBalance(ctx, u.ID, decimal.NewFromInt(1000)); err != nil {
		t.Fatalf("set balance: %v", err)
	}
	if _, err := c.RecordSpend(ctx, u.ID, ledger.SpendInput{Amount: decimal.NewFromInt(200), ForWhat: "Groceries", Date: date("2024-01-01")}); err != nil {
		t.Fatalf("spend: %v", err)
	}
	if _, err := c.RecordDeposit(ctx, u.ID, ledger.DepositInput{Amount: decimal.NewFromInt(500), Source: "Salary", Date: date("2024-01-05")}); err != nil {
		t.Fatalf("deposit: %v", err)
	}

	entries, err := NewAggregator(store, nil).Entries(ctx, u.ID)
	if err != nil {
		t.Fatalf("entries: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	if entries[0].Type != TypeDeposit || entries[0].Description != "Salary" {
		t.Fatalf("unexpected first entry: %+v", entries[0])
	}
	if entries[1].Type != TypeSpent || !entries[1].Amount.Equal(decimal.NewFromInt(200)) {
		t.Fatalf("unexpected second entry: %+v", entries[1])
	}
}

type brokenReader struct {
	storage.RecordReader
}

func (brokenReader) ListSpends(context.Context, int64) ([]domain.SpendRecord, error) {
	return nil, errors.New("connection reset")
}

func (brokenReader) ListLends(context.Context, int64) ([]domain.LendRecord, error) {
	return nil, nil
}

func (brokenReader) ListBorrows(context.Context, int64) ([]domain.BorrowRecord, error) {
	return nil, nil
}

func (brokenReader) ListDeposits(context.Context, int64) ([]domain.DepositRecord, error) {
	return nil, nil
}

func TestAggregatorPropagatesErrors(t *testing.T) {
	if _, err := NewAggregator(brokenReader{}, nil).Entries(context.Background(), 1); err == nil {
		t.Fatal("expected error")
	}
}

func TestStatementWritePDF(t *testing.T) {
	place := "Market"
	var buf bytes.Buffer
	err := Statement{
		User:    domain.PublicUser{ID: 1, Name: "Asha", Phone: "9111111111"},
		Balance: decimal.RequireFromString("1300"),
		Entries: []Entry{
			{Type: TypeDeposit, Amount: decimal.NewFromInt(500), Description: "Salary", Date: date("2024-01-05")},
			{Type: TypeSpent, Amount: decimal.NewFromInt(200), Description: "Groceries", Details: &place, Date: date("2024-01-01")},
		},
		GeneratedAt: date("2024-02-01"),
	}.WritePDF(&buf)
	if err != nil {
		t.Fatalf("write pdf: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Fatalf("output is not a pdf: %q", buf.Bytes()[:min(16, buf.Len())])
	}
}

func TestMaskPhone(t *testing.T) {
	if got := maskPhone("9111111234"); got != "******1234" {
		t.Fatalf("maskPhone = %q", got)
	}
	if got := maskPhone("123"); got != "123" {
		t.Fatalf("maskPhone short = %q", got)
	}
}
