package alerts

import "time"

// Task type constants
const (
	TaskGigCreated = "gig:created"
)

// QueueNotifications is the asynq queue gig events go to.
const QueueNotifications = "notifications"

// GigCreatedPayload is enqueued after a gig is stored.
type GigCreatedPayload struct {
	GigID     string    `json:"gig_id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
}

// Notification is an in-app message for a user.
type Notification struct {
	ID        string     `json:"id"`
	UserID    string     `json:"-"`
	Type      string     `json:"type"`
	Title     string     `json:"title"`
	Body      string     `json:"body"`
	Reference string     `json:"reference,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	ReadAt    *time.Time `json:"read_at"`
}
