package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/shopspring/decimal"

	"github.com/abhijitreddy-06/money-tracker/internal/domain"
	"github.com/abhijitreddy-06/money-tracker/internal/storage"
)

type ledgerTx struct {
	tx  *sql.Tx
	now func() time.Time
}

// LockBalance relies on the immediate transaction lock taken at BEGIN.
func (t *ledgerTx) LockBalance(ctx context.Context, userID int64) (decimal.Decimal, error) {
	var bal decimal.Decimal
	err := t.tx.QueryRowContext(ctx,
		`SELECT balance FROM users_balance WHERE user_id = ?`, userID,
	).Scan(&bal)
	if err != nil {
		return decimal.Zero, mapErr(err)
	}
	return bal, nil
}

func (t *ledgerTx) UpsertBalance(ctx context.Context, userID int64, amount decimal.Decimal) error {
	_, err := t.tx.ExecContext(ctx, `
INSERT INTO users_balance (user_id, balance, updated_at)
VALUES (?, ?, ?)
ON CONFLICT (user_id) DO UPDATE
SET balance = excluded.balance,
    updated_at = excluded.updated_at
`, userID, amount.String(), toMillis(t.now()))
	return mapErr(err)
}

func (t *ledgerTx) WriteBalance(ctx context.Context, userID int64, amount decimal.Decimal) error {
	res, err := t.tx.ExecContext(ctx,
		`UPDATE users_balance SET balance = ?, updated_at = ? WHERE user_id = ?`,
		amount.String(), toMillis(t.now()), userID,
	)
	if err != nil {
		return mapErr(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (t *ledgerTx) stamp() (int64, *time.Time) {
	created := fromMillis(toMillis(t.now()))
	return toMillis(created), &created
}

func (t *ledgerTx) InsertSpend(ctx context.Context, r *domain.SpendRecord) error {
	ms, created := t.stamp()
	res, err := t.tx.ExecContext(ctx,
		`INSERT INTO user_spend (user_id, amount, for_what, place, spend_date, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.UserID, r.Amount.String(), r.ForWhat, r.Place, toMillis(r.SpendDate), ms,
	)
	if err != nil {
		return mapErr(err)
	}
	if r.ID, err = res.LastInsertId(); err != nil {
		return err
	}
	r.CreatedAt = created
	return nil
}

func (t *ledgerTx) InsertLend(ctx context.Context, r *domain.LendRecord) error {
	ms, created := t.stamp()
	res, err := t.tx.ExecContext(ctx,
		`INSERT INTO user_lend (user_id, amount, to_whom, return_date, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		r.UserID, r.Amount.String(), r.ToWhom, toMillis(domain.Day(r.ReturnDate)), ms,
	)
	if err != nil {
		return mapErr(err)
	}
	if r.ID, err = res.LastInsertId(); err != nil {
		return err
	}
	r.CreatedAt = created
	return nil
}

func (t *ledgerTx) InsertBorrow(ctx context.Context, r *domain.BorrowRecord) error {
	ms, created := t.stamp()
	res, err := t.tx.ExecContext(ctx,
		`INSERT INTO user_borrow (user_id, amount, for_what, from_whom, return_date, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.UserID, r.Amount.String(), r.ForWhat, r.FromWhom, toMillis(domain.Day(r.ReturnDate)), ms,
	)
	if err != nil {
		return mapErr(err)
	}
	if r.ID, err = res.LastInsertId(); err != nil {
		return err
	}
	r.CreatedAt = created
	return nil
}

func (t *ledgerTx) InsertDeposit(ctx context.Context, r *domain.DepositRecord) error {
	ms, created := t.stamp()
	res, err := t.tx.ExecContext(ctx,
		`INSERT INTO user_deposit (user_id, amount, source, deposit_date, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		r.UserID, r.Amount.String(), r.Source, toMillis(r.DepositDate), ms,
	)
	if err != nil {
		return mapErr(err)
	}
	if r.ID, err = res.LastInsertId(); err != nil {
		return err
	}
	r.CreatedAt = created
	return nil
}
