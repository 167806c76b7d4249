package auth

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already registered")
)

// User is the account row used for authentication.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         string
	IsActive     bool
}

// UserStore reads and creates accounts.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
	Create(ctx context.Context, u User) error
}

type PgUserStore struct {
	Pool *pgxpool.Pool
}

func (s *PgUserStore) FindByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	err := s.Pool.QueryRow(ctx, `
		SELECT id::text, name, email, password, role, COALESCE(is_active, TRUE)
		FROM users WHERE email = $1`, email,
	).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.IsActive)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *PgUserStore) Create(ctx context.Context, u User) error {
	_, err := s.Pool.Exec(ctx, `
		INSERT INTO users (id, name, email, password, role, is_active)
		VALUES ($1, $2, $3, $4, $5, TRUE)`,
		u.ID, u.Name, u.Email, u.PasswordHash, u.Role,
	)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrEmailTaken
	}
	return err
}
