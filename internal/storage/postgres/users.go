package postgres

import (
	"context"

	"github.com/polkiloo/storefront/internal/domain/model"
)

type userRepository struct {
	q querier
}

func (r *userRepository) Create(ctx context.Context, login, email, passwordHash string) (*model.User, error) {
	const query = `INSERT INTO users (login, email, password_hash) VALUES ($1, $2, $3) RETURNING id, created_at`
	u := model.User{Login: login, Email: email, PasswordHash: passwordHash}
	if err := r.q.QueryRow(ctx, query, login, email, passwordHash).Scan(&u.ID, &u.CreatedAt); err != nil {
		return nil, mapError(err)
	}
	return &u, nil
}

func (r *userRepository) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	const query = `SELECT id, login, email, password_hash, created_at FROM users WHERE login=$1`
	var u model.User
	err := r.q.QueryRow(ctx, query, login).Scan(&u.ID, &u.Login, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return &u, nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	const query = `SELECT id, login, email, password_hash, created_at FROM users WHERE id=$1`
	var u model.User
	err := r.q.QueryRow(ctx, query, id).Scan(&u.ID, &u.Login, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return &u, nil
}
