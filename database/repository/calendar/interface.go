package calendarRepo

import (
	"context"
	"errors"

	"slotify/database"
	"slotify/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// Sentinel errors for normal, reportable not-found outcomes.
var (
	ErrDayNotFound  = errors.New("no slots found for this date")
	ErrSlotNotFound = errors.New("slot not found")
)

// CalendarRepository is the persisted slot calendar store. Each DayRecord is
// its own consistency boundary; only SetSlotAvailability needs transactional
// guarantees.
type CalendarRepository interface {
	// UpsertDays writes one DayRecord per date, keyed by <serviceId>_<date>.
	// When a record already exists for a key, availability flags of slots
	// whose time survives regeneration are preserved.
	UpsertDays(ctx context.Context, records []models.DayRecord) error
	// GetDay fetches one DayRecord by (serviceId, date). Returns
	// ErrDayNotFound when no calendar has been generated for that date.
	GetDay(ctx context.Context, serviceID, date string) (*models.DayRecord, error)
	// GetByService returns every DayRecord of a service, ordered by date.
	GetByService(ctx context.Context, serviceID string) ([]models.DayRecord, error)
	// SetSlotAvailability atomically flips one slot's availability inside a
	// single-document transaction. It reports whether the flag actually
	// changed; a request matching the current state is a silent no-op.
	SetSlotAvailability(ctx context.Context, serviceID, date, slotTime string, available bool) (bool, error)
	// ClearService empties the slot list of every DayRecord of a service and
	// returns the number of records touched.
	ClearService(ctx context.Context, serviceID string) (int64, error)
	// EnsureIndexes creates the secondary indexes the queries rely on.
	EnsureIndexes(ctx context.Context) error
}

// MongoCalendarRepo implements CalendarRepository using MongoDB.
type MongoCalendarRepo struct {
	coll *mongo.Collection
}

// NewMongoCalendarRepo constructs a CalendarRepository over the
// provider_services collection.
func NewMongoCalendarRepo() CalendarRepository {
	db := database.MongoClient.Database(database.DatabaseName)
	return &MongoCalendarRepo{
		coll: db.Collection("provider_services"),
	}
}
