package slots

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// minutesPerDay bounds the minutes-from-midnight representation.
const minutesPerDay = 24 * 60

// ParseClock parses a 12-hour clock string ("H:MM AM|PM") into minutes from
// midnight. "12:00 AM" maps to 0 and "12:00 PM" to 720.
func ParseClock(clock string) (int, error) {
	fields := strings.Fields(strings.TrimSpace(clock))
	if len(fields) != 2 {
		return 0, &FormatError{Input: clock, Reason: "expected \"H:MM AM|PM\""}
	}

	marker := strings.ToUpper(fields[1])
	if marker != "AM" && marker != "PM" {
		return 0, &FormatError{Input: clock, Reason: "missing AM/PM marker"}
	}

	hm := strings.Split(fields[0], ":")
	if len(hm) != 2 {
		return 0, &FormatError{Input: clock, Reason: "expected H:MM"}
	}
	hour, err := strconv.Atoi(hm[0])
	if err != nil {
		return 0, &FormatError{Input: clock, Reason: "non-numeric hour"}
	}
	minute, err := strconv.Atoi(hm[1])
	if err != nil {
		return 0, &FormatError{Input: clock, Reason: "non-numeric minute"}
	}
	if hour < 1 || hour > 12 {
		return 0, &FormatError{Input: clock, Reason: "hour out of range 1-12"}
	}
	if minute < 0 || minute > 59 {
		return 0, &FormatError{Input: clock, Reason: "minute out of range 0-59"}
	}

	if hour == 12 {
		hour = 0
	}
	total := hour*60 + minute
	if marker == "PM" {
		total += 12 * 60
	}
	return total, nil
}

// FormatClock is the inverse of ParseClock. Minutes must lie in [0, 1439];
// there is no day rollover.
func FormatClock(minutes int) (string, error) {
	if minutes < 0 || minutes >= minutesPerDay {
		return "", &FormatError{
			Input:  strconv.Itoa(minutes),
			Reason: "minutes out of range 0-1439",
		}
	}
	hour24 := minutes / 60
	minute := minutes % 60

	marker := "AM"
	if hour24 >= 12 {
		marker = "PM"
	}
	hour := hour24 % 12
	if hour == 0 {
		hour = 12
	}
	return fmt.Sprintf("%d:%02d %s", hour, minute, marker), nil
}

// AddMinutes offsets an instant by m minutes.
func AddMinutes(t time.Time, m int) time.Time {
	return t.Add(time.Duration(m) * time.Minute)
}

// Midnight strips the time of day, anchoring t to its local calendar day.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SlotEndTime derives the clock-form end of a slot from its start and the
// service duration.
func SlotEndTime(start string, durationMinutes int) (string, error) {
	startMin, err := ParseClock(start)
	if err != nil {
		return "", err
	}
	return FormatClock(startMin + durationMinutes)
}
