package reservation

import (
	"errors"
	"fmt"
)

// ErrSubmissionInFlight is returned when a submission is attempted while a
// previous one has not resolved yet.
var ErrSubmissionInFlight = errors.New("a submission is already in flight")

// ValidationError is a failed transition guard: the data entered for the
// current step is incomplete or malformed. The step does not change.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// AvailabilityConflictError is a date/time choice the availability rules do
// not currently consider open, e.g. a stale calendar view.
type AvailabilityConflictError struct {
	Date   string
	Slot   string
	Reason string
}

func (e *AvailabilityConflictError) Error() string {
	if e.Slot == "" {
		return fmt.Sprintf("date %s: %s", e.Date, e.Reason)
	}
	return fmt.Sprintf("date %s slot %s: %s", e.Date, e.Slot, e.Reason)
}

// SubmissionError wraps a failed gateway call. The flow stays at the confirm
// step so the user can retry.
type SubmissionError struct {
	Err error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("submission failed: %v", e.Err)
}

func (e *SubmissionError) Unwrap() error { return e.Err }

// StepError is an operation invoked at the wrong step.
type StepError struct {
	Op string
	At Step
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s is not allowed at step %s", e.Op, e.At)
}
