package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/abhijitreddy-06/money-tracker/internal/domain"
)

var countQueries = map[domain.Kind]string{
	domain.KindSpend:   `SELECT COUNT(*) FROM user_spend WHERE user_id = ?`,
	domain.KindLend:    `SELECT COUNT(*) FROM user_lend WHERE user_id = ?`,
	domain.KindBorrow:  `SELECT COUNT(*) FROM user_borrow WHERE user_id = ?`,
	domain.KindDeposit: `SELECT COUNT(*) FROM user_deposit WHERE user_id = ?`,
}

func (s *Store) Balance(ctx context.Context, userID int64) (decimal.Decimal, error) {
	var bal decimal.Decimal
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT balance FROM users_balance WHERE user_id = ?`, userID,
	).Scan(&bal)
	if err != nil {
		return decimal.Zero, mapErr(err)
	}
	return bal, nil
}

func (s *Store) CountRecords(ctx context.Context, userID int64, kind domain.Kind) (int64, error) {
	q, ok := countQueries[kind]
	if !ok {
		return 0, fmt.Errorf("unknown record kind %q", kind)
	}
	var n int64
	if err := s.sqlDB.QueryRowContext(ctx, q, userID).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (s *Store) ListSpends(ctx context.Context, userID int64) ([]domain.SpendRecord, error) {
	rows, err := s.sqlDB.QueryContext(ctx, `
		SELECT spend_id, amount, for_what, place, spend_date, created_at
		FROM user_spend
		WHERE user_id = ?
		ORDER BY spend_date DESC, spend_id DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.SpendRecord, 0)
	for rows.Next() {
		var (
			r       = domain.SpendRecord{UserID: userID}
			date    int64
			created sql.NullInt64
		)
		if err := rows.Scan(&r.ID, &r.Amount, &r.ForWhat, &r.Place, &date, &created); err != nil {
			return nil, err
		}
		r.SpendDate = fromMillis(date)
		r.CreatedAt = fromNullMillis(created)
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) ListLends(ctx context.Context, userID int64) ([]domain.LendRecord, error) {
	rows, err := s.sqlDB.QueryContext(ctx, `
		SELECT lend_id, amount, to_whom, return_date, created_at
		FROM user_lend
		WHERE user_id = ?
		ORDER BY created_at IS NULL, created_at DESC, lend_id DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.LendRecord, 0)
	for rows.Next() {
		var (
			r       = domain.LendRecord{UserID: userID}
			ret     int64
			created sql.NullInt64
		)
		if err := rows.Scan(&r.ID, &r.Amount, &r.ToWhom, &ret, &created); err != nil {
			return nil, err
		}
		r.ReturnDate = fromMillis(ret)
		r.CreatedAt = fromNullMillis(created)
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) ListBorrows(ctx context.Context, userID int64) ([]domain.BorrowRecord, error) {
	rows, err := s.sqlDB.QueryContext(ctx, `
		SELECT borrow_id, amount, for_what, from_whom, return_date, created_at
		FROM user_borrow
		WHERE user_id = ?
		ORDER BY created_at IS NULL, created_at DESC, borrow_id DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.BorrowRecord, 0)
	for rows.Next() {
		var (
			r       = domain.BorrowRecord{UserID: userID}
			ret     int64
			created sql.NullInt64
		)
		if err := rows.Scan(&r.ID, &r.Amount, &r.ForWhat, &r.FromWhom, &ret, &created); err != nil {
			return nil, err
		}
		r.ReturnDate = fromMillis(ret)
		r.CreatedAt = fromNullMillis(created)
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) ListDeposits(ctx context.Context, userID int64) ([]domain.DepositRecord, error) {
	rows, err := s.sqlDB.QueryContext(ctx, `
		SELECT deposit_id, amount, source, deposit_date, created_at
		FROM user_deposit
		WHERE user_id = ?
		ORDER BY deposit_date DESC, deposit_id DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.DepositRecord, 0)
	for rows.Next() {
		var (
			r       = domain.DepositRecord{UserID: userID}
			date    int64
			created sql.NullInt64
		)
		if err := rows.Scan(&r.ID, &r.Amount, &r.Source, &date, &created); err != nil {
			return nil, err
		}
		r.DepositDate = fromMillis(date)
		r.CreatedAt = fromNullMillis(created)
		out = append(out, r)
	}
	return out, rows.Err()
}
