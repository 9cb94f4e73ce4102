package booking

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrValidation is the root of every input error the wizard reports.
var ErrValidation = errors.New("validation failed")

var (
	ErrServiceRequired = fmt.Errorf("%w: please select a service", ErrValidation)
	ErrUnknownService  = fmt.Errorf("%w: unknown service", ErrValidation)
	ErrDateRequired    = fmt.Errorf("%w: please select a date", ErrValidation)
	ErrTimeRequired    = fmt.Errorf("%w: please select a time", ErrValidation)
	ErrInvalidDate     = fmt.Errorf("%w: date must be formatted YYYY-MM-DD", ErrValidation)
	ErrPastDate        = fmt.Errorf("%w: date must not be in the past", ErrValidation)
	ErrUnknownSlot     = fmt.Errorf("%w: time is not an offered slot", ErrValidation)
)

var (
	ErrInvalidTransition  = errors.New("action not allowed at this step")
	ErrSubmissionInFlight = errors.New("a submission is already in progress")
	ErrAlreadySubmitted   = errors.New("booking already confirmed")
	ErrSubmitFailed       = errors.New("booking could not be saved, please try again")
	ErrNotConfirmed       = errors.New("booking is not confirmed yet")
	ErrSessionNotFound    = errors.New("booking session not found or expired")
)

// FieldErrors maps contact field names to problems with them.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e[k])
	}
	return "invalid details: " + strings.Join(parts, ", ")
}

func (e FieldErrors) Unwrap() error { return ErrValidation }
