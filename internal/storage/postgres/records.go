package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/abhijitreddy-06/money-tracker/internal/domain"
)

var countQueries = map[domain.Kind]string{
	domain.KindSpend:   `SELECT COUNT(*) FROM user_spend WHERE user_id = $1`,
	domain.KindLend:    `SELECT COUNT(*) FROM user_lend WHERE user_id = $1`,
	domain.KindBorrow:  `SELECT COUNT(*) FROM user_borrow WHERE user_id = $1`,
	domain.KindDeposit: `SELECT COUNT(*) FROM user_deposit WHERE user_id = $1`,
}

func (s *Store) Balance(ctx context.Context, userID int64) (decimal.Decimal, error) {
	var bal decimal.Decimal
	err := s.pool.QueryRow(ctx,
		`SELECT balance FROM users_balance WHERE user_id = $1`,
		userID,
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
	if err := s.pool.QueryRow(ctx, q, userID).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (s *Store) ListSpends(ctx context.Context, userID int64) ([]domain.SpendRecord, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT spend_id, amount, for_what, place, spend_date, created_at
		FROM user_spend
		WHERE user_id = $1
		ORDER BY spend_date DESC, spend_id DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.SpendRecord, 0)
	for rows.Next() {
		r := domain.SpendRecord{UserID: userID}
		if err := rows.Scan(&r.ID, &r.Amount, &r.ForWhat, &r.Place, &r.SpendDate, &r.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) ListLends(ctx context.Context, userID int64) ([]domain.LendRecord, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT lend_id, amount, to_whom, return_date, created_at
		FROM user_lend
		WHERE user_id = $1
		-- rows without created_at go last, unlike the DESC default
		ORDER BY created_at DESC NULLS LAST, lend_id DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.LendRecord, 0)
	for rows.Next() {
		r := domain.LendRecord{UserID: userID}
		if err := rows.Scan(&r.ID, &r.Amount, &r.ToWhom, &r.ReturnDate, &r.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) ListBorrows(ctx context.Context, userID int64) ([]domain.BorrowRecord, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT borrow_id, amount, for_what, from_whom, return_date, created_at
		FROM user_borrow
		WHERE user_id = $1
		-- rows without created_at go last, unlike the DESC default
		ORDER BY created_at DESC NULLS LAST, borrow_id DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.BorrowRecord, 0)
	for rows.Next() {
		r := domain.BorrowRecord{UserID: userID}
		if err := rows.Scan(&r.ID, &r.Amount, &r.ForWhat, &r.FromWhom, &r.ReturnDate, &r.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) ListDeposits(ctx context.Context, userID int64) ([]domain.DepositRecord, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT deposit_id, amount, source, deposit_date, created_at
		FROM user_deposit
		WHERE user_id = $1
		ORDER BY deposit_date DESC, deposit_id DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.DepositRecord, 0)
	for rows.Next() {
		r := domain.DepositRecord{UserID: userID}
		if err := rows.Scan(&r.ID, &r.Amount, &r.Source, &r.DepositDate, &r.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
