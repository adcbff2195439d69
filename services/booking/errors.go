package booking

import "errors"

var (
	// ErrInvalidTransition is returned when an event is not legal in the
	// machine's current state.
	ErrInvalidTransition = errors.New("booking: operation not allowed in current state")

	// ErrUnknownTherapist is returned when a selection does not refer to a
	// therapist in the current result set.
	ErrUnknownTherapist = errors.New("booking: therapist not in current results")

	// ErrUnknownDay is returned when a day is not among the selected
	// therapist's availability.
	ErrUnknownDay = errors.New("booking: day not in therapist availability")

	// ErrSlotUnavailable is returned when a chosen slot is not an element of
	// the derived slot set for the selected day.
	ErrSlotUnavailable = errors.New("booking: slot not in derived slot set")

	// ErrMissingTherapistContext is returned when the booking stage is
	// entered without a prior therapist selection. Callers recover by
	// redirecting to search.
	ErrMissingTherapistContext = errors.New("booking: no therapist selected")

	// ErrPaymentInFlight is returned when a payment submission arrives while
	// a prior one for the same attempt has not completed.
	ErrPaymentInFlight = errors.New("booking: payment already in flight")
)
