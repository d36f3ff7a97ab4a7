package calendarRepo

import (
	"context"
	"fmt"
	"time"

	"slotify/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// SetSlotAvailability flips one slot's availability inside a single-document
// transaction. Concurrent toggles on the same DayRecord are serialized by the
// session, so at most one booking wins the race to claim a slot; the loser
// re-reads the post-transaction state and reports no change. A request that
// matches the current flag is a silent no-op.
func (repo *MongoCalendarRepo) SetSlotAvailability(ctx context.Context, serviceID, date, slotTime string, available bool) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client := repo.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return false, fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	recordID := models.DayRecordID(serviceID, date)
	changed := false

	txnFn := func(sc mongo.SessionContext) error {
		var rec models.DayRecord
		if err := repo.coll.FindOne(sc, bson.M{"_id": recordID}).Decode(&rec); err != nil {
			if err == mongo.ErrNoDocuments {
				return ErrDayNotFound
			}
			return fmt.Errorf("error reading day record %s: %w", recordID, err)
		}

		found := false
		for _, s := range rec.Slots {
			if s.Time != slotTime {
				continue
			}
			found = true
			changed = s.Available != available
			break
		}
		if !found {
			return ErrSlotNotFound
		}
		if !changed {
			return nil
		}

		filter := bson.M{"_id": recordID, "slots.time": slotTime}
		update := bson.M{"$set": bson.M{
			"slots.$.available": available,
			"updatedAt":         time.Now(),
		}}
		res, err := repo.coll.UpdateOne(sc, filter, update)
		if err != nil {
			return fmt.Errorf("error updating slot %s on %s: %w", slotTime, recordID, err)
		}
		if res.MatchedCount == 0 {
			return ErrSlotNotFound
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		return false, err
	}

	return changed, nil
}
