package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"slotify/models"

	"go.mongodb.org/mongo-driver/bson"
)

// GetByServiceAndDate returns the live bookings for a service on one date.
// Cancelled and rejected bookings no longer occupy their interval.
func (r *mongoBookingRepo) GetByServiceAndDate(ctx context.Context, serviceID, date string) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"serviceId": serviceID,
		"date":      date,
		"status": bson.M{"$nin": []string{
			models.BookingStatusCancelled,
			models.BookingStatusRejected,
		}},
	}
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error fetching bookings for service %s on %s: %w", serviceID, date, err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding bookings for service %s on %s: %w", serviceID, date, err)
	}
	return bookings, nil
}

// Create inserts a new booking document.
func (r *mongoBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, booking); err != nil {
		return fmt.Errorf("error creating booking: %w", err)
	}
	return nil
}
