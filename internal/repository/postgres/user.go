package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"content-gate/internal/domain/user"
	apperrors "content-gate/pkg/errors"
)

type UserRepository struct {
	db *DB
}

func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	query := `
		SELECT id, email, name, password_hash, created_at
		FROM users WHERE email = $1
	`

	u := &user.User{}
	err := r.db.Pool.QueryRow(ctx, query, email).Scan(
		&u.ID,
		&u.Email,
		&u.Name,
		&u.PasswordHash,
		&u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound(errUserNotFound)
		}
		return nil, errFailedGetUser(err)
	}

	return u, nil
}

func (r *UserRepository) Create(ctx context.Context, input user.CreateUserInput) (*user.User, error) {
	query := `
		INSERT INTO users (email, name, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, email, name, password_hash, created_at
	`

	u := &user.User{}
	err := r.db.Pool.QueryRow(ctx, query, input.Email, input.Name, input.PasswordHash).Scan(
		&u.ID,
		&u.Email,
		&u.Name,
		&u.PasswordHash,
		&u.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.Conflict("user with this email already exists")
		}
		return nil, errFailedCreateUser(err)
	}

	return u, nil
}
