package slots

import (
	"time"

	"slotify/models"
)

// DateFormat is the calendar-date key format used across the engine.
const DateFormat = "2006-01-02"

// SlotMap associates ordered calendar dates with their generated slots.
type SlotMap struct {
	// Dates in ascending order, day 0 first.
	Dates []string
	// Slots per date, every slot initially available.
	Days map[string][]models.PersistedSlot
}

// BuildSlotMap applies the daily generator across a rolling window of
// cfg.NumberOfDays future days starting at today (time of day is stripped).
// Today is injected rather than read from the clock so the builder stays
// pure and reproducible.
func BuildSlotMap(cfg models.SlotGenerationConfig, today time.Time) (*SlotMap, error) {
	if cfg.ServiceDuration <= 0 {
		return nil, newValidationError("serviceDuration", "must be greater than zero")
	}
	if cfg.ServiceID == "" {
		return nil, newValidationError("serviceId", "must not be empty")
	}
	if cfg.ProviderID == "" {
		return nil, newValidationError("providerId", "must not be empty")
	}
	if cfg.ServiceName == "" {
		return nil, newValidationError("serviceName", "must not be empty")
	}

	days := cfg.NumberOfDays
	if days <= 0 {
		days = models.DefaultHorizonDays
	}

	anchor := Midnight(today)
	sm := &SlotMap{
		Dates: make([]string, 0, days),
		Days:  make(map[string][]models.PersistedSlot, days),
	}

	for i := 0; i < days; i++ {
		day := anchor.AddDate(0, 0, i)
		date := day.Format(DateFormat)

		candidates, err := GenerateDaySlots(day, cfg.WorkingHours, cfg.ServiceDuration, cfg.BufferMinutes)
		if err != nil {
			return nil, err
		}

		persisted := make([]models.PersistedSlot, len(candidates))
		for j, c := range candidates {
			persisted[j] = models.PersistedSlot{Time: c.StartTime, Available: true}
		}

		sm.Dates = append(sm.Dates, date)
		sm.Days[date] = persisted
	}
	return sm, nil
}
