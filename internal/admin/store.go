package admin

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound means the target row does not exist.
var ErrNotFound = errors.New("not found")

// Stats is the moderation dashboard summary.
type Stats struct {
	Users          int            `json:"users"`
	Gigs           int            `json:"gigs"`
	GigsByCategory map[string]int `json:"gigs_by_category"`
}

// Store carries out moderation writes.
type Store interface {
	SetGigStatus(ctx context.Context, gigID, status string) error
	SetUserActive(ctx context.Context, userID string, active bool) error
	SetUserRole(ctx context.Context, userID, role string) error
	Stats(ctx context.Context) (Stats, error)
}

type PgStore struct {
	Pool *pgxpool.Pool
}

func (s *PgStore) exec(ctx context.Context, sql string, args ...any) error {
	res, err := s.Pool.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PgStore) SetGigStatus(ctx context.Context, gigID, status string) error {
	return s.exec(ctx, `UPDATE gigs SET status = $2 WHERE id = $1`, gigID, status)
}

func (s *PgStore) SetUserActive(ctx context.Context, userID string, active bool) error {
	return s.exec(ctx, `UPDATE users SET is_active = $2 WHERE id = $1`, userID, active)
}

func (s *PgStore) SetUserRole(ctx context.Context, userID, role string) error {
	return s.exec(ctx, `UPDATE users SET role = $2 WHERE id = $1`, userID, role)
}

func (s *PgStore) Stats(ctx context.Context) (Stats, error) {
	st := Stats{GigsByCategory: map[string]int{}}
	if err := s.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&st.Users); err != nil {
		return st, err
	}
	rows, err := s.Pool.Query(ctx, `SELECT category, COUNT(*) FROM gigs GROUP BY category`)
	if err != nil {
		return st, err
	}
	defer rows.Close()
	for rows.Next() {
		var cat string
		var n int
		if err := rows.Scan(&cat, &n); err != nil {
			return st, err
		}
		st.GigsByCategory[cat] = n
		st.Gigs += n
	}
	return st, rows.Err()
}
