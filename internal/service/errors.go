package service

import "errors"

var (
	// ErrInvalidTrip is returned when a trip is missing a destination or
	// has no participants.
	ErrInvalidTrip = errors.New("invalid trip")

	// ErrParticipantInUse is returned when removing a participant that an
	// expense still references as payer or beneficiary.
	ErrParticipantInUse = errors.New("participant is referenced by expenses")

	// ErrUnknownParticipant is returned when an expense names a
	// participant the trip does not have.
	ErrUnknownParticipant = errors.New("participant does not belong to the trip")

	// ErrRateUnavailable is returned when an exchange rate is needed but
	// neither supplied by the caller nor obtainable from the provider.
	ErrRateUnavailable = errors.New("exchange rate unavailable")
)
