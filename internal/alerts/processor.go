package alerts

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Worker consumes gig events and turns them into notifications.
type Worker struct {
	store  NotificationStore
	logger *zap.Logger
	server *asynq.Server
}

func NewWorker(redisAddr string, store NotificationStore, logger *zap.Logger) *Worker {
	return &Worker{
		store:  store,
		logger: logger,
		server: asynq.NewServer(asynq.RedisClientOpt{Addr: redisAddr}, asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				QueueNotifications: 10,
			},
		}),
	}
}

// Mux routes task types to their handlers.
func (w *Worker) Mux() *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskGigCreated, w.handleGigCreated)
	return mux
}

// Start runs the worker in the background until Shutdown.
func (w *Worker) Start() error {
	return w.server.Start(w.Mux())
}

func (w *Worker) Shutdown() {
	w.server.Shutdown()
}

func (w *Worker) handleGigCreated(ctx context.Context, t *asynq.Task) error {
	var p GigCreatedPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("decode %s: %v: %w", TaskGigCreated, err, asynq.SkipRetry)
	}
	body := fmt.Sprintf("%q is now listed.", p.Title)
	if p.Category != "" {
		body = fmt.Sprintf("%q is now listed under %s.", p.Title, p.Category)
	}
	n := Notification{
		UserID:    p.UserID,
		Type:      TaskGigCreated,
		Title:     "Your gig is live",
		Body:      body,
		Reference: p.GigID,
	}
	if err := w.store.Create(ctx, n); err != nil {
		w.logger.Error("store notification failed", zap.String("gig_id", p.GigID), zap.Error(err))
		return err
	}
	w.logger.Info("gig notification stored", zap.String("gig_id", p.GigID), zap.String("user_id", p.UserID))
	return nil
}
