package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"bookmycourt/config"
	"bookmycourt/database"
	"bookmycourt/models"
)

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo creates a new instance of BookingRepository using MongoDB.
func NewMongoBookingRepo() BookingRepository {
	coll := database.MongoClient.Database(config.AppConfig.DatabaseName).Collection("bookings")
	repo := &MongoBookingRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create booking indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// Create inserts a new booking document. A duplicate-key violation of the
// active-slot unique index is surfaced as ErrSlotConflict.
func (r *MongoBookingRepo) Create(booking *models.Booking) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	booking.CreatedAt = now
	booking.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, booking)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrSlotConflict
		}
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

// Delete removes a booking document by its ID.
func (r *MongoBookingRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete booking with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return ErrNoMatch
	}
	return nil
}

// GetByID retrieves a booking by its unique ID. Returns (nil, nil) when no
// such booking exists.
func (r *MongoBookingRepo) GetByID(id string) (*models.Booking, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var booking models.Booking
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&booking); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch booking with id %s: %w", id, err)
	}
	return &booking, nil
}

// FindActiveByCourtDate returns pending and confirmed bookings for the court
// on the given date. When excludeID is non-empty that booking is left out,
// used when re-validating a booking against everything but itself.
func (r *MongoBookingRepo) FindActiveByCourtDate(courtID, date, excludeID string) ([]models.Booking, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{
		"court_id": courtID,
		"date":     date,
		"status":   bson.M{"$in": []string{models.StatusPending, models.StatusConfirmed}},
	}
	if excludeID != "" {
		filter["id"] = bson.M{"$ne": excludeID}
	}

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bookings for court %s on %s: %w", courtID, date, err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}

// FindByUser returns all bookings made by the given user, newest first.
func (r *MongoBookingRepo) FindByUser(userID string) ([]models.Booking, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := optionsFindNewestFirst()
	cursor, err := r.coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bookings for user %s: %w", userID, err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}

// GetAll returns bookings matching the given filter, newest first.
func (r *MongoBookingRepo) GetAll(filter bson.M) ([]models.Booking, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	if filter == nil {
		filter = bson.M{}
	}
	cursor, err := r.coll.Find(ctx, filter, optionsFindNewestFirst())
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}

// UpdateStatus transitions a booking to newStatus only if its current status
// is one of expectCurrent. Extra fields (e.g. payment_ref) are set alongside.
func (r *MongoBookingRepo) UpdateStatus(id, newStatus string, extra bson.M, expectCurrent ...string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id}
	if len(expectCurrent) > 0 {
		filter["status"] = bson.M{"$in": expectCurrent}
	}

	set := bson.M{
		"status":     newStatus,
		"updated_at": time.Now(),
	}
	for k, v := range extra {
		set[k] = v
	}

	result, err := r.coll.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update status for booking %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return ErrNoMatch
	}
	return nil
}

// SetRating attaches a rating to a completed booking that has none yet.
func (r *MongoBookingRepo) SetRating(id string, rating models.Rating) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{
		"id":     id,
		"status": models.StatusCompleted,
		"rating": bson.M{"$exists": false},
	}
	update := bson.M{"$set": bson.M{
		"rating":     rating,
		"updated_at": time.Now(),
	}}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to set rating for booking %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return ErrNoMatch
	}
	return nil
}

// CompleteExpired marks confirmed bookings whose interval has fully passed as
// completed. A booking is expired when its date is before today, or its end
// time on today's date is at or before nowMinutes.
func (r *MongoBookingRepo) CompleteExpired(today string, nowMinutes int) (int64, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{
		"status": models.StatusConfirmed,
		"$or": []bson.M{
			{"date": bson.M{"$lt": today}},
			{"date": today, "end": bson.M{"$lte": nowMinutes}},
		},
	}
	update := bson.M{"$set": bson.M{
		"status":     models.StatusCompleted,
		"updated_at": time.Now(),
	}}

	result, err := r.coll.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, fmt.Errorf("failed to complete expired bookings: %w", err)
	}
	return result.ModifiedCount, nil
}
