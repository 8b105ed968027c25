// Package reservation implements the multi-step reservation flow: the draft
// being assembled, the step state machine that sequences it, and the session
// store that keeps one flow per visitor.
package reservation

import (
	"context"
	"strings"
	"sync"
	"time"
)

// Step is a position in the reservation flow.
type Step int

const (
	StepSelectService Step = iota + 1
	StepSelectDateTime
	StepEnterContact
	StepConfirm
	StepSuccess
)

func (s Step) String() string {
	switch s {
	case StepSelectService:
		return "select_service"
	case StepSelectDateTime:
		return "select_datetime"
	case StepEnterContact:
		return "enter_contact"
	case StepConfirm:
		return "confirm"
	case StepSuccess:
		return "success"
	default:
		return "unknown"
	}
}

// ContactInfo holds the visitor's contact details. First name, last name,
// email and phone are required; the message is optional. Email format is not
// checked beyond presence.
type ContactInfo struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Message   string `json:"message,omitempty"`
}

// Validate trims and checks the four required fields.
func (c ContactInfo) Validate() error {
	fields := []struct {
		name  string
		value string
	}{
		{"first_name", c.FirstName},
		{"last_name", c.LastName},
		{"email", c.Email},
		{"phone", c.Phone},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return &ValidationError{Field: f.name, Reason: "is required"}
		}
	}
	return nil
}

// DateTimeChoice is the chosen date and slot label.
type DateTimeChoice struct {
	Date time.Time `json:"date"`
	Time string    `json:"time"`
}

// IsZero reports whether nothing has been chosen yet.
func (d DateTimeChoice) IsZero() bool {
	return d.Date.IsZero() && d.Time == ""
}

// Draft is the in-progress reservation assembled step by step.
type Draft struct {
	Selection Selection
	When      DateTimeChoice
	Contact   ContactInfo
}

// Confirmation is the gateway's acknowledgment of an accepted draft.
type Confirmation struct {
	ReservationID int64  `json:"reservation_id"`
	Reference     string `json:"reference,omitempty"`
}

// SubmissionGateway accepts a finalized draft.
type SubmissionGateway interface {
	Submit(ctx context.Context, draft Draft) (*Confirmation, error)
}

// AvailabilityChecker answers whether a date is bookable and which slots are
// open on it.
type AvailabilityChecker interface {
	IsUnavailable(date time.Time) bool
	OpenSlots(date time.Time) []string
}

// Flow is the per-session reservation state machine. Every transition method
// validates its guard and returns a typed error instead of silently staying
// put. A Flow is safe for concurrent use, though a session has a single
// interactive writer in practice.
type Flow struct {
	mu           sync.Mutex
	step         Step
	draft        Draft
	submitting   bool
	confirmation *Confirmation
}

// NewFlow returns a flow at the first step with an empty draft.
func NewFlow() *Flow {
	return &Flow{step: StepSelectService}
}

// Step returns the current step.
func (f *Flow) Step() Step {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.step
}

// Draft returns a copy of the current draft.
func (f *Flow) Draft() Draft {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

// Confirmation returns the gateway confirmation once the flow has succeeded.
func (f *Flow) Confirmation() *Confirmation {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.confirmation
}

// Submitting reports whether a gateway call is in flight.
func (f *Flow) Submitting() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submitting
}

// Choose binds a service or formation and advances to the date/time step.
// Changing the selection drops any previously chosen date/time so a slot
// picked for another item can never leak into the draft.
func (f *Flow) Choose(sel Selection) error {
	if sel.IsEmpty() {
		return &ValidationError{Field: "selection", Reason: "choose a service or a formation"}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.step != StepSelectService {
		return &StepError{Op: "choose", At: f.step}
	}
	if f.draft.Selection.Kind() != sel.Kind() || f.draft.Selection.ItemID() != sel.ItemID() {
		f.draft.When = DateTimeChoice{}
	}
	f.draft.Selection = sel
	f.step = StepSelectDateTime
	return nil
}

// ConfirmDateTime records the chosen date and slot and advances to the
// contact step. The choice is validated against the availability rules at
// transition time, so a stale calendar cannot smuggle in a closed slot.
func (f *Flow) ConfirmDateTime(avail AvailabilityChecker, choice DateTimeChoice) error {
	if choice.Date.IsZero() {
		return &ValidationError{Field: "date", Reason: "is required"}
	}
	if choice.Time == "" {
		return &ValidationError{Field: "time", Reason: "is required"}
	}

	dateStr := choice.Date.Format("2006-01-02")
	if avail.IsUnavailable(choice.Date) {
		return &AvailabilityConflictError{Date: dateStr, Reason: "date is not bookable"}
	}
	open := false
	for _, s := range avail.OpenSlots(choice.Date) {
		if s == choice.Time {
			open = true
			break
		}
	}
	if !open {
		return &AvailabilityConflictError{Date: dateStr, Slot: choice.Time, Reason: "slot is not open"}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.step != StepSelectDateTime {
		return &StepError{Op: "confirm_datetime", At: f.step}
	}
	f.draft.When = choice
	f.step = StepEnterContact
	return nil
}

// ConfirmContact records the contact details and advances to the confirm step.
func (f *Flow) ConfirmContact(info ContactInfo) error {
	if err := info.Validate(); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.step != StepEnterContact {
		return &StepError{Op: "confirm_contact", At: f.step}
	}
	f.draft.Contact = info
	f.step = StepConfirm
	return nil
}

// Submit hands the draft to the gateway. Only one submission may be in flight
// at a time; a second call while pending returns ErrSubmissionInFlight. On
// gateway failure the flow stays at the confirm step with the draft intact so
// the user can retry, as any real network call can fail. If the user navigated
// back while the call was in flight the step is left where they put it.
func (f *Flow) Submit(ctx context.Context, gateway SubmissionGateway) (*Confirmation, error) {
	f.mu.Lock()
	if f.step != StepConfirm {
		f.mu.Unlock()
		return nil, &StepError{Op: "submit", At: f.step}
	}
	if f.submitting {
		f.mu.Unlock()
		return nil, ErrSubmissionInFlight
	}
	f.submitting = true
	draft := f.draft
	f.mu.Unlock()

	conf, err := gateway.Submit(ctx, draft)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitting = false
	if err != nil {
		return nil, &SubmissionError{Err: err}
	}
	if f.step == StepConfirm {
		f.step = StepSuccess
		f.confirmation = conf
	}
	return conf, nil
}

// Back moves one step backwards. Backing out of the first step is the
// caller's concern (it exits the flow), and the success step only restarts.
func (f *Flow) Back() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch f.step {
	case StepSelectDateTime, StepEnterContact, StepConfirm:
		f.step--
		return nil
	default:
		return &StepError{Op: "back", At: f.step}
	}
}

// Restart resets the flow to its initial state after a success. This is the
// only way to re-enter the machine once a reservation has been accepted.
func (f *Flow) Restart() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.step != StepSuccess {
		return &StepError{Op: "restart", At: f.step}
	}
	f.draft = Draft{}
	f.confirmation = nil
	f.step = StepSelectService
	return nil
}
