package service

import (
	"errors"
	"fmt"
)

// ErrValidation marks input problems caught before any persistence call.
// These block the action with an inline message and are never retried.
var ErrValidation = errors.New("validation failed")

// ErrMissingStartDate is returned when recurrence expansion is requested for
// a template without a scheduled date. Expansion is refused outright; no
// partial set of instances is ever created.
var ErrMissingStartDate = fmt.Errorf("%w: recurring job requires a scheduled date", ErrValidation)

// ErrNothingToRoute is returned when route optimization is requested with no
// candidate stops.
var ErrNothingToRoute = errors.New("nothing to route")

func validationf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
