package calculator

import (
	"errors"
	"fmt"
)

var (
	// ErrNoParticipants is returned when an allocation is requested for an
	// empty participant set.
	ErrNoParticipants = errors.New("must have at least one participant")

	// ErrNonPositiveAmount is returned when a total to allocate is zero or
	// negative.
	ErrNonPositiveAmount = errors.New("amount must be positive")
)

// ValidationError reports that caller-supplied allocation inputs do not sum
// to the expected total. Expected and Actual carry both sides of the
// mismatch so callers can surface a precise message.
type ValidationError struct {
	What     string // "exact amounts" or "percentages"
	Expected float64
	Actual   float64
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s sum to %.2f, expected %.2f", e.What, e.Actual, e.Expected)
}
