package models

import (
	"fmt"
	"time"
)

// Default knobs for calendar generation.
const (
	DefaultHorizonDays   = 30
	DefaultBufferMinutes = 15
)

// WorkingHours bounds slot generation for one day. Start must strictly
// precede End within the same day; overnight spans are not supported.
type WorkingHours struct {
	Start string `bson:"start" json:"start"` // e.g. "9:00 AM"
	End   string `bson:"end" json:"end"`     // e.g. "6:00 PM"
}

// CandidateSlot is a computed bookable interval on a specific calendar date,
// before any conflict filtering. It is never persisted on its own.
type CandidateSlot struct {
	StartTime    string    `json:"startTime"` // clock form, e.g. "9:00 AM"
	EndTime      string    `json:"endTime"`
	StartInstant time.Time `json:"startInstant"`
	EndInstant   time.Time `json:"endInstant"`
}

// PersistedSlot is the durable, minimal slot form stored per day. The end
// time is derived from Time plus the service duration when needed.
type PersistedSlot struct {
	Time      string `bson:"time" json:"time"`
	Available bool   `bson:"available" json:"available"`
}

// DayRecord is one persisted calendar document per (serviceId, date) pair.
// Slots are ordered by ascending time and contain no duplicate times.
type DayRecord struct {
	ID              string          `bson:"_id" json:"id"` // composite key: <serviceId>_<date>
	ServiceID       string          `bson:"serviceId" json:"serviceId"`
	ProviderID      string          `bson:"providerId" json:"providerId"`
	ServiceName     string          `bson:"serviceName" json:"serviceName"`
	Date            string          `bson:"date" json:"date"` // "YYYY-MM-DD"
	ServiceDuration int             `bson:"serviceDuration" json:"serviceDuration"`
	WorkingHours    WorkingHours    `bson:"workingHours" json:"workingHours"`
	Slots           []PersistedSlot `bson:"slots" json:"slots"`
	CreatedAt       time.Time       `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time       `bson:"updatedAt" json:"updatedAt"`
}

// DayRecordID builds the composite document key for a (serviceId, date) pair.
func DayRecordID(serviceID, date string) string {
	return fmt.Sprintf("%s_%s", serviceID, date)
}

// SlotGenerationConfig is the input to the multi-day slot map builder.
type SlotGenerationConfig struct {
	ServiceID       string       `json:"serviceId"`
	ProviderID      string       `json:"providerId"`
	ServiceName     string       `json:"serviceName"`
	ServiceDuration int          `json:"serviceDuration"` // minutes
	WorkingHours    WorkingHours `json:"workingHours"`
	NumberOfDays    int          `json:"numberOfDays"`  // <= 0 falls back to DefaultHorizonDays
	BufferMinutes   int          `json:"bufferMinutes"` // must be >= 0; callers fill in DefaultBufferMinutes when absent
}
