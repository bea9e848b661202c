package domain

import (
	"errors"
	"fmt"
)

// Error taxonomy shared by all packages. Package-level sentinels wrap one of these
// so that handlers can map any error to a response class with errors.Is.
var (
	ErrValidation        = errors.New("validation error")
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("conflict")
	ErrInvalidTransition = errors.New("invalid transition")
)

// InvalidTransitionError reports a lifecycle transition that is not allowed
// from the enquiry's current state.
type InvalidTransitionError struct {
	EnquiryID  int64
	From       EnquiryStatus
	Transition Transition
	Reason     string
}

func (e *InvalidTransitionError) Error() string {
	msg := fmt.Sprintf("enquiry %d: transition %q is not allowed from status %s", e.EnquiryID, e.Transition, e.From)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}
