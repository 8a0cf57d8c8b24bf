package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/abhijitreddy-06/money-tracker/internal/domain"
	"github.com/abhijitreddy-06/money-tracker/internal/storage"
)

type ledgerTx struct {
	tx pgx.Tx
}

func (t *ledgerTx) LockBalance(ctx context.Context, userID int64) (decimal.Decimal, error) {
	var bal decimal.Decimal
	err := t.tx.QueryRow(ctx,
		`SELECT balance FROM users_balance WHERE user_id = $1 FOR UPDATE`,
		userID,
	).Scan(&bal)
	if err != nil {
		return decimal.Zero, mapErr(err)
	}
	return bal, nil
}

func (t *ledgerTx) UpsertBalance(ctx context.Context, userID int64, amount decimal.Decimal) error {
	_, err := t.tx.Exec(ctx, `
INSERT INTO users_balance (user_id, balance, updated_at)
VALUES ($1, $2, NOW())
ON CONFLICT (user_id) DO UPDATE
SET balance = EXCLUDED.balance,
    updated_at = NOW()
`, userID, amount)
	return mapErr(err)
}

func (t *ledgerTx) WriteBalance(ctx context.Context, userID int64, amount decimal.Decimal) error {
	ct, err := t.tx.Exec(ctx, `
UPDATE users_balance
SET balance = $2,
    updated_at = NOW()
WHERE user_id = $1
`, userID, amount)
	if err != nil {
		return mapErr(err)
	}
	if ct.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (t *ledgerTx) InsertSpend(ctx context.Context, r *domain.SpendRecord) error {
	return mapErr(t.tx.QueryRow(ctx,
		`INSERT INTO user_spend (user_id, amount, for_what, place, spend_date)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING spend_id, created_at`,
		r.UserID, r.Amount, r.ForWhat, r.Place, r.SpendDate,
	).Scan(&r.ID, &r.CreatedAt))
}

func (t *ledgerTx) InsertLend(ctx context.Context, r *domain.LendRecord) error {
	return mapErr(t.tx.QueryRow(ctx,
		`INSERT INTO user_lend (user_id, amount, to_whom, return_date)
		 VALUES ($1, $2, $3, $4)
		 RETURNING lend_id, created_at`,
		r.UserID, r.Amount, r.ToWhom, r.ReturnDate,
	).Scan(&r.ID, &r.CreatedAt))
}

func (t *ledgerTx) InsertBorrow(ctx context.Context, r *domain.BorrowRecord) error {
	return mapErr(t.tx.QueryRow(ctx,
		`INSERT INTO user_borrow (user_id, amount, for_what, from_whom, return_date)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING borrow_id, created_at`,
		r.UserID, r.Amount, r.ForWhat, r.FromWhom, r.ReturnDate,
	).Scan(&r.ID, &r.CreatedAt))
}

func (t *ledgerTx) InsertDeposit(ctx context.Context, r *domain.DepositRecord) error {
	return mapErr(t.tx.QueryRow(ctx,
		`INSERT INTO user_deposit (user_id, amount, source, deposit_date)
		 VALUES ($1, $2, $3, $4)
		 RETURNING deposit_id, created_at`,
		r.UserID, r.Amount, r.Source, r.DepositDate,
	).Scan(&r.ID, &r.CreatedAt))
}
