package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"studiobook/database"
	"studiobook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo constructs a new instance of MongoBookingRepo.
func NewMongoBookingRepo() BookingRepository {
	db := database.MongoClient.Database("studiobook")
	return &MongoBookingRepo{
		coll: db.Collection("bookings"),
	}
}

// Create inserts a new booking document.
func (repo *MongoBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := repo.coll.InsertOne(ctx, booking); err != nil {
		return fmt.Errorf("error creating booking: %w", err)
	}
	return nil
}

// GetByID retrieves a booking by its ID.
func (repo *MongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var booking models.Booking
	err := repo.coll.FindOne(ctx, bson.M{"id": id}).Decode(&booking)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching booking %s: %w", id, err)
	}
	return &booking, nil
}

// GetByApprovalToken retrieves the booking that carries the given single-use
// token. Only pending bookings hold a token, so at most one document matches.
func (repo *MongoBookingRepo) GetByApprovalToken(ctx context.Context, token string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var booking models.Booking
	err := repo.coll.FindOne(ctx, bson.M{"approval_token": token}).Decode(&booking)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching booking by token: %w", err)
	}
	return &booking, nil
}

// ListActiveByDate returns the non-denied bookings for one date.
func (repo *MongoBookingRepo) ListActiveByDate(ctx context.Context, orgID, date string) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"org_id":          orgID,
		"booking_date":    date,
		"approval_status": bson.M{"$ne": models.StatusDenied},
	}
	cursor, err := repo.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error listing bookings for %s: %w", date, err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding bookings for %s: %w", date, err)
	}
	return bookings, nil
}

// ListActiveByDateRange returns pending and approved bookings within the
// inclusive date range.
func (repo *MongoBookingRepo) ListActiveByDateRange(ctx context.Context, orgID, startDate, endDate string) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"org_id":          orgID,
		"booking_date":    bson.M{"$gte": startDate, "$lte": endDate},
		"approval_status": bson.M{"$in": []string{models.StatusPending, models.StatusApproved}},
	}
	cursor, err := repo.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error listing bookings in range %s..%s: %w", startDate, endDate, err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding bookings in range: %w", err)
	}
	return bookings, nil
}

// TransitionStatus flips the booking out of fromStatus exactly once. The
// filter carries the pre-transition status so the update is a compare-and-swap:
// two racing callers produce one ModifiedCount of 1 and one of 0.
func (repo *MongoBookingRepo) TransitionStatus(ctx context.Context, id, fromStatus, toStatus string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": id, "approval_status": fromStatus}
	update := bson.M{
		"$set": bson.M{
			"approval_status": toStatus,
			"updated_at":      time.Now().UTC(),
		},
		"$unset": bson.M{"approval_token": ""},
	}
	res, err := repo.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("error transitioning booking %s to %s: %w", id, toStatus, err)
	}
	return res.ModifiedCount == 1, nil
}

// HasOtherActiveOnDate reports whether any pending or approved booking other
// than excludeID exists for the date.
func (repo *MongoBookingRepo) HasOtherActiveOnDate(ctx context.Context, orgID, date, excludeID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"org_id":          orgID,
		"booking_date":    date,
		"id":              bson.M{"$ne": excludeID},
		"approval_status": bson.M{"$in": []string{models.StatusPending, models.StatusApproved}},
	}
	count, err := repo.coll.CountDocuments(ctx, filter)
	if err != nil {
		return false, fmt.Errorf("error counting active bookings for %s: %w", date, err)
	}
	return count > 0, nil
}

// SetCadenceRefs backfills external pipeline identifiers on a booking.
func (repo *MongoBookingRepo) SetCadenceRefs(ctx context.Context, id, contactID, cadenceDealID, dealID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"cadence_contact_id": contactID,
		"cadence_deal_id":    cadenceDealID,
		"deal_id":            dealID,
		"updated_at":         time.Now().UTC(),
	}}
	if _, err := repo.coll.UpdateOne(ctx, bson.M{"id": id}, update); err != nil {
		return fmt.Errorf("error setting cadence refs on booking %s: %w", id, err)
	}
	return nil
}
