// Package history merges the four record kinds into one newest-first feed.
package history

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/abhijitreddy-06/money-tracker/internal/domain"
	"github.com/abhijitreddy-06/money-tracker/internal/storage"
)

// Entry types as shown to clients.
const (
	TypeSpent    = "Spent"
	TypeLent     = "Lent"
	TypeBorrowed = "Borrowed"
	TypeDeposit  = "Deposit"
)

// Entry is one row of the unified history.
type Entry struct {
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Details     *string         `json:"details"`
	Date        time.Time       `json:"date"`
}

// Aggregator reads every record list for a user and merges them.
type Aggregator struct {
	records storage.RecordReader
	now     func() time.Time
}

func NewAggregator(records storage.RecordReader, now func() time.Time) *Aggregator {
	if now == nil {
		now = time.Now
	}
	return &Aggregator{records: records, now: now}
}

// Entries returns the user's history sorted by date, newest first. Entries
// with equal dates keep the order spends, lends, borrows, deposits.
func (a *Aggregator) Entries(ctx context.Context, userID int64) ([]Entry, error) {
	var (
		spends   []domain.SpendRecord
		lends    []domain.LendRecord
		borrows  []domain.BorrowRecord
		deposits []domain.DepositRecord
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		spends, err = a.records.ListSpends(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		lends, err = a.records.ListLends(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		borrows, err = a.records.ListBorrows(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		deposits, err = a.records.ListDeposits(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return Merge(spends, lends, borrows, deposits, a.now()), nil
}

// Merge builds the unified feed. Lends and borrows without a creation time
// are dated now.
func Merge(spends []domain.SpendRecord, lends []domain.LendRecord, borrows []domain.BorrowRecord, deposits []domain.DepositRecord, now time.Time) []Entry {
	out := make([]Entry, 0, len(spends)+len(lends)+len(borrows)+len(deposits))
	for _, r := range spends {
		var details *string
		if r.Place != "" {
			place := r.Place
			details = &place
		}
		out = append(out, Entry{Type: TypeSpent, Amount: r.Amount, Description: r.ForWhat, Details: details, Date: r.SpendDate})
	}
	for _, r := range lends {
		details := "Return by " + r.ReturnDate.Format(domain.DateLayout)
		out = append(out, Entry{Type: TypeLent, Amount: r.Amount, Description: r.ToWhom, Details: &details, Date: createdOr(r.CreatedAt, now)})
	}
	for _, r := range borrows {
		details := "Due by " + r.ReturnDate.Format(domain.DateLayout)
		out = append(out, Entry{Type: TypeBorrowed, Amount: r.Amount, Description: r.FromWhom, Details: &details, Date: createdOr(r.CreatedAt, now)})
	}
	for _, r := range deposits {
		out = append(out, Entry{Type: TypeDeposit, Amount: r.Amount, Description: r.Source, Date: r.DepositDate})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}

func createdOr(t *time.Time, now time.Time) time.Time {
	if t == nil {
		return now
	}
	return *t
}

// Between keeps entries dated within [from, to], both inclusive by day.
// A zero bound is open.
func Between(entries []Entry, from, to time.Time) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		d := domain.Day(e.Date)
		if !from.IsZero() && d.Before(domain.Day(from)) {
			continue
		}
		if !to.IsZero() && d.After(domain.Day(to)) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Totals sums money in (deposits, borrows) and money out (spends, lends).
func Totals(entries []Entry) (in, out decimal.Decimal) {
	for _, e := range entries {
		switch e.Type {
		case TypeDeposit, TypeBorrowed:
			in = in.Add(e.Amount)
		default:
			out = out.Add(e.Amount)
		}
	}
	return in, out
}
