package slots

import (
	"time"

	"slotify/models"
)

// GenerateDaySlots produces the ordered candidate slots for exactly one
// calendar day. The step between slot starts is serviceDuration plus
// bufferMinutes; a trailing slot that would not fully fit before the end of
// working hours is never emitted. The generator is pure — it never consults
// bookings or the wall clock — so its output is reproducible and safe to
// persist before any bookings exist.
func GenerateDaySlots(day time.Time, hours models.WorkingHours, serviceDuration, bufferMinutes int) ([]models.CandidateSlot, error) {
	if serviceDuration <= 0 {
		return nil, newValidationError("serviceDuration", "must be greater than zero")
	}
	if bufferMinutes < 0 {
		return nil, newValidationError("bufferMinutes", "must not be negative")
	}

	startMin, err := ParseClock(hours.Start)
	if err != nil {
		return nil, err
	}
	endMin, err := ParseClock(hours.End)
	if err != nil {
		return nil, err
	}
	if startMin >= endMin {
		return nil, newValidationError("workingHours", "start must precede end")
	}

	midnight := Midnight(day)
	step := serviceDuration + bufferMinutes

	var candidates []models.CandidateSlot
	for cursor := startMin; cursor+serviceDuration <= endMin; cursor += step {
		startClock, err := FormatClock(cursor)
		if err != nil {
			return nil, err
		}
		endClock, err := FormatClock(cursor + serviceDuration)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, models.CandidateSlot{
			StartTime:    startClock,
			EndTime:      endClock,
			StartInstant: AddMinutes(midnight, cursor),
			EndInstant:   AddMinutes(midnight, cursor+serviceDuration),
		})
	}
	return candidates, nil
}
