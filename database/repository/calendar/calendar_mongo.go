package calendarRepo

import (
	"context"
	"fmt"
	"time"

	"studiobook/database"
	"studiobook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoCalendarRepo implements CalendarRepository using MongoDB.
type MongoCalendarRepo struct {
	coll *mongo.Collection
}

// NewMongoCalendarRepo constructs a new instance of MongoCalendarRepo.
func NewMongoCalendarRepo() CalendarRepository {
	db := database.MongoClient.Database("studiobook")
	return &MongoCalendarRepo{
		coll: db.Collection("calendar_days"),
	}
}

// GetByDate retrieves the override record for one date.
func (repo *MongoCalendarRepo) GetByDate(ctx context.Context, orgID, date string) (*models.CalendarDay, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var day models.CalendarDay
	err := repo.coll.FindOne(ctx, bson.M{"org_id": orgID, "date": date}).Decode(&day)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching calendar day %s: %w", date, err)
	}
	return &day, nil
}

// ListRange returns all override records with date in [startDate, endDate].
func (repo *MongoCalendarRepo) ListRange(ctx context.Context, orgID, startDate, endDate string) ([]models.CalendarDay, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"org_id": orgID,
		"date":   bson.M{"$gte": startDate, "$lte": endDate},
	}
	cursor, err := repo.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error listing calendar days %s..%s: %w", startDate, endDate, err)
	}
	defer cursor.Close(ctx)

	var days []models.CalendarDay
	if err := cursor.All(ctx, &days); err != nil {
		return nil, fmt.Errorf("error decoding calendar days: %w", err)
	}
	return days, nil
}

// Upsert writes the full override record keyed by (org_id, date).
func (repo *MongoCalendarRepo) Upsert(ctx context.Context, day *models.CalendarDay) (*models.CalendarDay, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	day.UpdatedAt = time.Now().UTC()
	filter := bson.M{"org_id": day.OrgID, "date": day.Date}
	update := bson.M{"$set": bson.M{
		"day_status": day.DayStatus,
		"notes":      day.Notes,
		"updated_at": day.UpdatedAt,
	}}
	opts := options.Update().SetUpsert(true)
	if _, err := repo.coll.UpdateOne(ctx, filter, update, opts); err != nil {
		return nil, fmt.Errorf("error upserting calendar day %s: %w", day.Date, err)
	}
	return day, nil
}

// UpsertNote writes only the advisory notes, leaving any admin-set status
// untouched. Missing rows are created as "available".
func (repo *MongoCalendarRepo) UpsertNote(ctx context.Context, orgID, date, notes string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"org_id": orgID, "date": date}
	update := bson.M{
		"$set": bson.M{
			"notes":      notes,
			"updated_at": time.Now().UTC(),
		},
		"$setOnInsert": bson.M{"day_status": models.DayAvailable},
	}
	opts := options.Update().SetUpsert(true)
	if _, err := repo.coll.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("error upserting note on calendar day %s: %w", date, err)
	}
	return nil
}

// ClearNote blanks the notes field on an existing row.
func (repo *MongoCalendarRepo) ClearNote(ctx context.Context, orgID, date string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"org_id": orgID, "date": date}
	update := bson.M{
		"$unset": bson.M{"notes": ""},
		"$set":   bson.M{"updated_at": time.Now().UTC()},
	}
	if _, err := repo.coll.UpdateOne(ctx, filter, update); err != nil {
		return fmt.Errorf("error clearing note on calendar day %s: %w", date, err)
	}
	return nil
}
