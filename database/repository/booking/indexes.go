package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"studiobook/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes the booking queries rely on. The sparse
// unique index on approval_token also enforces single-use lookups: only
// pending bookings carry the field at all.
func EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	coll := database.MongoClient.Database("studiobook").Collection("bookings")
	_, err := coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "org_id", Value: 1}, {Key: "booking_date", Value: 1}},
		},
		{
			Keys:    bson.D{{Key: "approval_token", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create booking indexes: %w", err)
	}
	return nil
}
