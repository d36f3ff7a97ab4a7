package calendarRepo

import (
	"context"
	"fmt"
	"time"

	"slotify/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UpsertDays replaces one DayRecord per date. Regeneration is a full rewrite
// of the slot list, but availability flags of slots whose time is still
// generated are carried over so republishing never un-books a reserved slot.
// Each date targets a distinct document key, so the writes are independent
// and fanned out concurrently.
func (repo *MongoCalendarRepo) UpsertDays(ctx context.Context, records []models.DayRecord) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	errCh := make(chan error, len(records))
	for _, rec := range records {
		go func(rec models.DayRecord) {
			errCh <- repo.upsertDay(ctx, rec)
		}(rec)
	}

	for range records {
		if err := <-errCh; err != nil {
			return err
		}
	}
	return nil
}

func (repo *MongoCalendarRepo) upsertDay(ctx context.Context, rec models.DayRecord) error {
	rec.ID = models.DayRecordID(rec.ServiceID, rec.Date)
	now := time.Now()
	rec.UpdatedAt = now

	var existing models.DayRecord
	err := repo.coll.FindOne(ctx, bson.M{"_id": rec.ID}).Decode(&existing)
	switch {
	case err == mongo.ErrNoDocuments:
		rec.CreatedAt = now
	case err != nil:
		return fmt.Errorf("error reading day record %s: %w", rec.ID, err)
	default:
		rec.CreatedAt = existing.CreatedAt
		rec.Slots = mergeSlots(rec.Slots, existing.Slots)
	}

	opts := options.Replace().SetUpsert(true)
	if _, err := repo.coll.ReplaceOne(ctx, bson.M{"_id": rec.ID}, rec, opts); err != nil {
		return fmt.Errorf("error writing day record %s: %w", rec.ID, err)
	}
	return nil
}

// mergeSlots keeps a regenerated slot unavailable when the prior record
// already had that time booked. Times that no longer exist after
// regeneration are dropped along with their flags.
func mergeSlots(fresh, existing []models.PersistedSlot) []models.PersistedSlot {
	booked := make(map[string]struct{}, len(existing))
	for _, s := range existing {
		if !s.Available {
			booked[s.Time] = struct{}{}
		}
	}
	for i := range fresh {
		if _, ok := booked[fresh[i].Time]; ok {
			fresh[i].Available = false
		}
	}
	return fresh
}

// GetDay fetches one DayRecord by its composite key.
func (repo *MongoCalendarRepo) GetDay(ctx context.Context, serviceID, date string) (*models.DayRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var rec models.DayRecord
	filter := bson.M{"_id": models.DayRecordID(serviceID, date)}
	if err := repo.coll.FindOne(ctx, filter).Decode(&rec); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrDayNotFound
		}
		return nil, fmt.Errorf("error fetching day record for service %s on %s: %w", serviceID, date, err)
	}
	return &rec, nil
}

// GetByService returns all DayRecords of a service ordered by date.
func (repo *MongoCalendarRepo) GetByService(ctx context.Context, serviceID string) ([]models.DayRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})
	cursor, err := repo.coll.Find(ctx, bson.M{"serviceId": serviceID}, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching calendar for service %s: %w", serviceID, err)
	}
	defer cursor.Close(ctx)

	var records []models.DayRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("error decoding calendar for service %s: %w", serviceID, err)
	}
	return records, nil
}

// ClearService empties the slot list of every DayRecord of a service, used
// when a service is deactivated. Records stay addressable by key.
func (repo *MongoCalendarRepo) ClearService(ctx context.Context, serviceID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"slots":     []models.PersistedSlot{},
		"updatedAt": time.Now(),
	}}
	res, err := repo.coll.UpdateMany(ctx, bson.M{"serviceId": serviceID}, update)
	if err != nil {
		return 0, fmt.Errorf("error clearing calendar for service %s: %w", serviceID, err)
	}
	return res.ModifiedCount, nil
}
