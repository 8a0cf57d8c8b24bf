package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/abhijitreddy-06/money-tracker/internal/domain"
)

func (s *Store) CreateUser(ctx context.Context, u domain.User) (domain.User, error) {
	created := s.now().UTC().Truncate(time.Millisecond)
	res, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO users (name, phone, password, created_at) VALUES (?, ?, ?, ?)`,
		u.Name, u.Phone, u.PasswordHash, toMillis(created),
	)
	if err != nil {
		return domain.User{}, mapErr(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.User{}, err
	}
	u.ID = id
	u.CreatedAt = created
	return u, nil
}

func (s *Store) UserByPhone(ctx context.Context, phone string) (domain.User, error) {
	return s.scanUser(s.sqlDB.QueryRowContext(ctx,
		`SELECT id, name, phone, password, created_at FROM users WHERE phone = ?`, phone))
}

func (s *Store) UserByID(ctx context.Context, id int64) (domain.User, error) {
	return s.scanUser(s.sqlDB.QueryRowContext(ctx,
		`SELECT id, name, phone, password, created_at FROM users WHERE id = ?`, id))
}

func (s *Store) scanUser(row *sql.Row) (domain.User, error) {
	var (
		u       domain.User
		created int64
	)
	if err := row.Scan(&u.ID, &u.Name, &u.Phone, &u.PasswordHash, &created); err != nil {
		return domain.User{}, mapErr(err)
	}
	u.CreatedAt = fromMillis(created)
	return u, nil
}
