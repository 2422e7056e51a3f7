package bookingRepo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"fairway/models"
)

func (r *mongoBookingRepo) FindNeedingSync(ctx context.Context, limit int64) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"sync_status": bson.M{"$in": []string{models.SyncStatusPending, models.SyncStatusFailed}},
		"$or": []bson.M{
			{"calendar_event_id": bson.M{"$exists": false}},
			{"calendar_event_id": ""},
		},
	}
	opts := options.Find().
		SetLimit(limit).
		SetSort(bson.M{"created_at": 1})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}
