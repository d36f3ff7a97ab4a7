package calendar

import (
	"context"

	"slotify/models"
)

// DayAvailability is the result-style payload for persisted-calendar reads.
// Success false with Error set covers the normal "no calendar generated"
// outcome; genuine store failures are returned as errors instead.
type DayAvailability struct {
	Success   bool                   `json:"success"`
	ServiceID string                 `json:"serviceId"`
	Date      string                 `json:"date"`
	Slots     []models.PersistedSlot `json:"slots"`
	Total     int                    `json:"total"`
	Message   string                 `json:"message,omitempty"`
	Error     string                 `json:"error,omitempty"`
}

// LiveAvailability is the result of the live read path: candidate generation
// composed with conflict resolution against current bookings.
type LiveAvailability struct {
	Success   bool                   `json:"success"`
	ServiceID string                 `json:"serviceId"`
	Date      string                 `json:"date"`
	Open      []models.CandidateSlot `json:"open"`
	Total     int                    `json:"total"`
	Error     string                 `json:"error,omitempty"`
}

// BookingRequest carries the fields needed to claim a slot and record the
// resulting booking.
type BookingRequest struct {
	UserID    string  `json:"userId" binding:"required"`
	ServiceID string  `json:"serviceId" binding:"required"`
	Date      string  `json:"date" binding:"required"`
	Time      string  `json:"time" binding:"required"`
	Price     float64 `json:"price"`
}

// CalendarService exposes the slot calendar to screen-level code and the
// administrative batch surface.
type CalendarService interface {
	// PublishCalendar (re)generates and persists the rolling calendar for
	// one service, returning the number of days written.
	PublishCalendar(ctx context.Context, cfg models.SlotGenerationConfig) (int, error)
	// GetDaySlots returns the full persisted slot list for one date.
	GetDaySlots(ctx context.Context, serviceID, date string) (*DayAvailability, error)
	// GetAvailableSlots returns only the slots still marked available.
	GetAvailableSlots(ctx context.Context, serviceID, date string) (*DayAvailability, error)
	// GetLiveAvailability computes open slots from live bookings instead of
	// the persisted flags.
	GetLiveAvailability(ctx context.Context, serviceID, date string) (*LiveAvailability, error)
	// SetSlotAvailability atomically toggles one slot, reporting whether the
	// flag changed.
	SetSlotAvailability(ctx context.Context, serviceID, date, slotTime string, available bool) (bool, error)
	// BookSlot claims a slot (available -> unavailable) and records the
	// booking; the loser of a race receives ErrSlotTaken.
	BookSlot(ctx context.Context, req BookingRequest) (*models.Booking, error)
	// GetServiceCalendar returns every persisted day of a service.
	GetServiceCalendar(ctx context.Context, serviceID string) ([]models.DayRecord, error)
	// ClearCalendar empties all slot lists of a deactivated service.
	ClearCalendar(ctx context.Context, serviceID string) (int64, error)
}
