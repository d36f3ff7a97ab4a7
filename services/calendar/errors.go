package calendar

import "errors"

// Per-service migration validation failures, recorded verbatim in the
// migration summary.
var (
	errMissingProvider = errors.New("Missing providerId")
	errInvalidDuration = errors.New("Invalid duration")
)

// ErrSlotTaken signals that a concurrent booking already claimed the slot;
// the caller lost the race and must pick another slot.
var ErrSlotTaken = errors.New("slot already booked")

// DayNotFoundMessage is the user-visible outcome for a date with no
// generated calendar. It is a normal state, not a failure.
const DayNotFoundMessage = "No slots found for this date"

// FullyBookedMessage marks a date whose slots are all taken, which callers
// must distinguish from a date with no calendar at all.
const FullyBookedMessage = "Date fully booked"
