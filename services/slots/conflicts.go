package slots

import "slotify/models"

// DefaultBookingDuration is the assumed occupied interval, in minutes, for a
// booking whose real service duration is unknown to the resolver.
const DefaultBookingDuration = 60

// ResolveConflicts filters a day's candidate slots against the bookings that
// fall on that day. Callers must pre-filter bookings by date; the resolver
// only compares clock times. Each booking occupies the half-open interval
// [start, start+bookingDuration); a candidate stays open iff it overlaps no
// occupied interval under strict inequality, so back-to-back scheduling where
// one booking ends exactly as the next slot begins is not a conflict.
//
// Pass bookingDuration <= 0 to fall back to DefaultBookingDuration. The
// original candidate count is returned alongside the open slots so callers
// can compute an availability ratio.
func ResolveConflicts(candidates []models.CandidateSlot, bookings []models.Booking, bookingDuration int) ([]models.CandidateSlot, int, error) {
	if bookingDuration <= 0 {
		bookingDuration = DefaultBookingDuration
	}

	type interval struct{ start, end int }
	occupied := make([]interval, 0, len(bookings))
	for _, b := range bookings {
		start, err := ParseClock(b.Time)
		if err != nil {
			return nil, 0, err
		}
		occupied = append(occupied, interval{start: start, end: start + bookingDuration})
	}

	open := make([]models.CandidateSlot, 0, len(candidates))
	for _, c := range candidates {
		slotStart, err := ParseClock(c.StartTime)
		if err != nil {
			return nil, 0, err
		}
		slotEnd, err := ParseClock(c.EndTime)
		if err != nil {
			return nil, 0, err
		}

		conflicted := false
		for _, iv := range occupied {
			if slotStart < iv.end && slotEnd > iv.start {
				conflicted = true
				break
			}
		}
		if !conflicted {
			open = append(open, c)
		}
	}
	return open, len(candidates), nil
}
