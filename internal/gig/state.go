package gig

// State is the outcome shown next to the form. Exactly one variant holds
// at a time: Idle, Submitting, Failed or Succeeded.
type State interface {
	state()
}

type (
	// Idle is the state before the first submission.
	Idle struct{}
	// Submitting means a request is in flight; further submits are ignored.
	Submitting struct{}
	// Failed carries the text shown to the user for the last attempt.
	Failed struct{ Message string }
	// Succeeded means the last attempt was accepted and the draft was reset.
	Succeeded struct{}
)

func (Idle) state()       {}
func (Submitting) state() {}
func (Failed) state()     {}
func (Succeeded) state()  {}

// StateName is a short label for logs.
func StateName(s State) string {
	switch s.(type) {
	case Idle:
		return "idle"
	case Submitting:
		return "submitting"
	case Failed:
		return "failed"
	case Succeeded:
		return "succeeded"
	}
	return "unknown"
}

// IsBusy reports whether s blocks a new submission.
func IsBusy(s State) bool {
	_, ok := s.(Submitting)
	return ok
}
