package models

import "time"

// Booking lifecycle states. The slot engine only reads bookings; state
// transitions belong to the booking workflow.
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusAccepted  = "accepted"
	BookingStatusCompleted = "completed"
	BookingStatusRejected  = "rejected"
	BookingStatusCancelled = "cancelled"
)

// Booking represents a booking record. Only Date, Time and the service
// duration matter to conflict resolution; everything else is owned by the
// booking workflow.
type Booking struct {
	ID         string    `bson:"id" json:"id"`
	UserID     string    `bson:"userId" json:"userId"`
	ProviderID string    `bson:"providerId" json:"providerId"`
	ServiceID  string    `bson:"serviceId" json:"serviceId"`
	Date       string    `bson:"date" json:"date"` // "YYYY-MM-DD"
	Time       string    `bson:"time" json:"time"` // clock form, e.g. "10:00 AM"
	Status     string    `bson:"status" json:"status"`
	Price      float64   `bson:"price" json:"price"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
}
