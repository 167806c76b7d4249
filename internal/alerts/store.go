package alerts

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotificationNotFound means the row is missing, foreign or already read.
var ErrNotificationNotFound = errors.New("not found or already read")

// NotificationStore persists in-app notifications.
type NotificationStore interface {
	Create(ctx context.Context, n Notification) error
	ListByUser(ctx context.Context, userID string) ([]Notification, error)
	MarkRead(ctx context.Context, id, userID string) error
}

type PgNotificationStore struct {
	Pool *pgxpool.Pool
}

func (s *PgNotificationStore) Create(ctx context.Context, n Notification) error {
	var ref *string
	if n.Reference != "" {
		ref = &n.Reference
	}
	_, err := s.Pool.Exec(ctx,
		`INSERT INTO notifications (user_id, type, title, body, reference)
		 VALUES ($1, $2, $3, $4, $5)`, n.UserID, n.Type, n.Title, n.Body, ref,
	)
	return err
}

func (s *PgNotificationStore) ListByUser(ctx context.Context, userID string) ([]Notification, error) {
	rows, err := s.Pool.Query(ctx,
		`SELECT id::text, type, title, COALESCE(body, ''), COALESCE(reference::text, ''), created_at, read_at
		 FROM notifications WHERE user_id = $1 ORDER BY created_at DESC`, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []Notification{}
	for rows.Next() {
		n := Notification{UserID: userID}
		if err := rows.Scan(&n.ID, &n.Type, &n.Title, &n.Body, &n.Reference, &n.CreatedAt, &n.ReadAt); err != nil {
			return nil, err
		}
		items = append(items, n)
	}
	return items, rows.Err()
}

func (s *PgNotificationStore) MarkRead(ctx context.Context, id, userID string) error {
	res, err := s.Pool.Exec(ctx,
		`UPDATE notifications SET read_at = NOW() WHERE id = $1 AND user_id = $2 AND read_at IS NULL`, id, userID,
	)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNotificationNotFound
	}
	return nil
}
