// Package gigform holds the draft being edited and drives its submission.
package gigform

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/sudo-init-do/crafthub/internal/gig"
	"github.com/sudo-init-do/crafthub/internal/gigclient"
)

// ErrSubmitting is returned by Submit while an earlier submission is in flight.
var ErrSubmitting = errors.New("a submission is already in progress")

// Submitter sends a payload to the gig API.
type Submitter interface {
	CreateGig(ctx context.Context, token string, p gig.Payload) (*gigclient.CreateResult, error)
}

// Form owns one draft and the state of its latest submission.
type Form struct {
	mu        sync.Mutex
	draft     gig.Draft
	state     gig.State
	submitter Submitter
	logger    *zap.Logger
}

func New(submitter Submitter, logger *zap.Logger) *Form {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Form{
		draft:     gig.EmptyDraft(),
		state:     gig.Idle{},
		submitter: submitter,
		logger:    logger,
	}
}

func (f *Form) Draft() gig.Draft {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

func (f *Form) State() gig.State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Update replaces a single field of the draft.
func (f *Form) Update(field gig.Field, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	next, err := f.draft.With(field, value)
	if err != nil {
		return err
	}
	f.draft = next
	return nil
}

// UpdateByName is Update keyed by the field's wire name.
func (f *Form) UpdateByName(name, value string) error {
	field, err := gig.ParseField(name)
	if err != nil {
		return err
	}
	return f.Update(field, value)
}

// Submit sends the current draft once. While a submission is in flight it
// does nothing and returns ErrSubmitting. A rejection is recorded as
// gig.Failed and keeps the draft; success records gig.Succeeded and clears it.
func (f *Form) Submit(ctx context.Context, token string) (gig.State, error) {
	f.mu.Lock()
	if gig.IsBusy(f.state) {
		st := f.state
		f.mu.Unlock()
		return st, ErrSubmitting
	}
	f.state = gig.Submitting{}
	payload := gig.BuildPayload(f.draft)
	f.mu.Unlock()

	f.logger.Debug("submitting gig", zap.String("state", gig.StateName(gig.Submitting{})), zap.String("title", payload.Title), zap.String("category", payload.Category))
	res, err := f.submitter.CreateGig(ctx, token, payload)

	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		msg := gigclient.Message(err)
		f.state = gig.Failed{Message: msg}
		f.logger.Info("gig submission failed", zap.String("state", gig.StateName(f.state)), zap.String("message", msg))
		return f.state, nil
	}

	f.state = gig.Succeeded{}
	f.draft = gig.EmptyDraft()
	fields := []zap.Field{zap.String("state", gig.StateName(f.state)), zap.String("title", payload.Title)}
	if res != nil && res.GigID != "" {
		fields = append(fields, zap.String("gig_id", res.GigID))
	}
	f.logger.Info("gig submitted", fields...)
	return f.state, nil
}
