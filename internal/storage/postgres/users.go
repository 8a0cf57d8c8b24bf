package postgres

import (
	"context"

	"github.com/abhijitreddy-06/money-tracker/internal/domain"
)

func (s *Store) CreateUser(ctx context.Context, u domain.User) (domain.User, error) {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO users (name, phone, password)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		u.Name, u.Phone, u.PasswordHash,
	).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		return domain.User{}, mapErr(err)
	}
	return u, nil
}

func (s *Store) UserByPhone(ctx context.Context, phone string) (domain.User, error) {
	var u domain.User
	err := s.pool.QueryRow(ctx,
		`SELECT id, name, phone, password, created_at FROM users WHERE phone = $1`,
		phone,
	).Scan(&u.ID, &u.Name, &u.Phone, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		return domain.User{}, mapErr(err)
	}
	return u, nil
}

func (s *Store) UserByID(ctx context.Context, id int64) (domain.User, error) {
	var u domain.User
	err := s.pool.QueryRow(ctx,
		`SELECT id, name, phone, password, created_at FROM users WHERE id = $1`,
		id,
	).Scan(&u.ID, &u.Name, &u.Phone, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		return domain.User{}, mapErr(err)
	}
	return u, nil
}
