package alerts

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

// Enqueuer is the part of *asynq.Client the queue uses.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Queue publishes gig events to asynq.
type Queue struct {
	client Enqueuer
}

func NewQueue(client Enqueuer) *Queue {
	return &Queue{client: client}
}

// NewGigCreatedTask builds the task for a stored gig.
func NewGigCreatedTask(p GigCreatedPayload) (*asynq.Task, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("marshal %s payload: %w", TaskGigCreated, err)
	}
	return asynq.NewTask(TaskGigCreated, b, asynq.MaxRetry(5)), nil
}

// NotifyGigCreated schedules the in-app "gig is live" notification.
func (q *Queue) NotifyGigCreated(ctx context.Context, gigID, userID, title, category string, createdAt time.Time) error {
	task, err := NewGigCreatedTask(GigCreatedPayload{
		GigID:     gigID,
		UserID:    userID,
		Title:     title,
		Category:  category,
		CreatedAt: createdAt,
	})
	if err != nil {
		return err
	}
	_, err = q.client.EnqueueContext(ctx, task, asynq.Queue(QueueNotifications))
	return err
}

// Noop is used when no Redis is configured.
type Noop struct{}

func (Noop) NotifyGigCreated(context.Context, string, string, string, string, time.Time) error {
	return nil
}
