package bookingRepo

import (
	"context"

	"slotify/database"
	"slotify/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// BookingRepository is the booking source the conflict resolver reads from,
// plus the single insert used when a slot claim succeeds. Lifecycle
// transitions belong to the booking workflow.
type BookingRepository interface {
	// GetByServiceAndDate returns the bookings occupying intervals on the
	// given date, excluding cancelled and rejected ones.
	GetByServiceAndDate(ctx context.Context, serviceID, date string) ([]models.Booking, error)
	Create(ctx context.Context, booking *models.Booking) error
}

type mongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo constructs a BookingRepository over the bookings
// collection.
func NewMongoBookingRepo() BookingRepository {
	db := database.MongoClient.Database(database.DatabaseName)
	return &mongoBookingRepo{
		coll: db.Collection("bookings"),
	}
}
