package marketplace

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// GigStore persists gigs.
type GigStore interface {
	CountByUser(ctx context.Context, userID string) (int, error)
	Insert(ctx context.Context, g Gig) error
	ListByUser(ctx context.Context, userID string) ([]Gig, error)
	List(ctx context.Context, f Filter) ([]Gig, error)
}

// PgStore is the Postgres GigStore.
type PgStore struct {
	Pool *pgxpool.Pool
}

const gigColumns = `id::text, user_id::text, title, description, category, pricing::text,
	delivery_time_days, revision_count, tags, requirements, status, created_at`

func (s *PgStore) CountByUser(ctx context.Context, userID string) (int, error) {
	var n int
	err := s.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM gigs WHERE user_id = $1`, userID).Scan(&n)
	return n, err
}

func (s *PgStore) Insert(ctx context.Context, g Gig) error {
	_, err := s.Pool.Exec(ctx,
		`INSERT INTO gigs (id, user_id, title, description, category, pricing,
		                   delivery_time_days, revision_count, tags, requirements, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, CAST($6::text AS NUMERIC), $7, $8, $9, $10, $11, $12)`,
		g.ID, g.UserID, g.Title, g.Description, g.Category, g.Pricing,
		g.DeliveryTimeDays, g.RevisionCount, g.Tags, g.Requirements, g.Status, g.CreatedAt,
	)
	return err
}

func (s *PgStore) ListByUser(ctx context.Context, userID string) ([]Gig, error) {
	rows, err := s.Pool.Query(ctx,
		`SELECT `+gigColumns+` FROM gigs WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	return collectGigs(rows)
}

func (s *PgStore) List(ctx context.Context, f Filter) ([]Gig, error) {
	var (
		where []string
		args  []any
	)
	if f.Query != "" {
		args = append(args, "%"+f.Query+"%")
		where = append(where, fmt.Sprintf("(title ILIKE $%d OR description ILIKE $%d)", len(args), len(args)))
	}
	if f.Category != "" {
		args = append(args, f.Category)
		where = append(where, fmt.Sprintf("category = $%d", len(args)))
	}
	where = append(where, "status = 'active'")

	query := `SELECT ` + gigColumns + ` FROM gigs WHERE ` + strings.Join(where, " AND ")
	args = append(args, f.Limit, f.Offset)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := s.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return collectGigs(rows)
}

func collectGigs(rows pgx.Rows) ([]Gig, error) {
	defer rows.Close()
	gigs := []Gig{}
	for rows.Next() {
		var g Gig
		if err := rows.Scan(&g.ID, &g.UserID, &g.Title, &g.Description, &g.Category, &g.Pricing,
			&g.DeliveryTimeDays, &g.RevisionCount, &g.Tags, &g.Requirements, &g.Status, &g.CreatedAt); err != nil {
			return nil, err
		}
		gigs = append(gigs, g)
	}
	return gigs, rows.Err()
}
