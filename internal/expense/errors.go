package expense

import (
	"errors"
	"fmt"
)

var (
	ErrNonPositiveAmount  = errors.New("amount must be positive")
	ErrNonPositiveRate    = errors.New("exchange rate must be positive")
	ErrMissingDescription = errors.New("description is required")
	ErrMissingCategory    = errors.New("category tag is required")
	ErrMissingPayer       = errors.New("a payer is required")
	ErrNoBeneficiaries    = errors.New("at least one beneficiary is required")
	ErrSameParticipant    = errors.New("sender and receiver must differ")
)

// PayerMismatchError reports that the supplied payer amounts do not sum to
// the expense total. Both sums are in the entry currency.
type PayerMismatchError struct {
	Expected float64
	Actual   float64
}

func (e *PayerMismatchError) Error() string {
	return fmt.Sprintf("payer amounts sum to %.2f, expected %.2f", e.Actual, e.Expected)
}

// SplitMismatchError reports that the supplied beneficiary shares do not
// sum to the expense total. Both sums are in the entry currency.
type SplitMismatchError struct {
	Expected float64
	Actual   float64
}

func (e *SplitMismatchError) Error() string {
	return fmt.Sprintf("split amounts sum to %.2f, expected %.2f", e.Actual, e.Expected)
}
