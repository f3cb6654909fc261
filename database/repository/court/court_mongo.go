package courtRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"bookmycourt/config"
	"bookmycourt/database"
	"bookmycourt/models"
)

// ErrNoMatch is returned by updates that matched no court document.
var ErrNoMatch = mongo.ErrNoDocuments

// MongoCourtRepo implements CourtRepository using MongoDB.
type MongoCourtRepo struct {
	coll *mongo.Collection
}

// NewMongoCourtRepo creates a new instance of CourtRepository using MongoDB.
func NewMongoCourtRepo() CourtRepository {
	coll := database.MongoClient.Database(config.AppConfig.DatabaseName).Collection("courts")
	repo := &MongoCourtRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create court indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes creates indexes for fields frequently used in queries.
func (r *MongoCourtRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "sport_type", Value: 1}, {Key: "is_active", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new court document.
func (r *MongoCourtRepo) Create(court *models.Court) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	court.CreatedAt = now
	court.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, court)
	if err != nil {
		return fmt.Errorf("failed to create court: %w", err)
	}
	return nil
}

// Update modifies an existing court document.
func (r *MongoCourtRepo) Update(court *models.Court) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	court.UpdatedAt = time.Now()
	filter := bson.M{"id": court.ID}
	update := bson.M{"$set": court}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update court with id %s: %w", court.ID, err)
	}
	if result.MatchedCount == 0 {
		return ErrNoMatch
	}
	return nil
}

// GetByID retrieves a court by its unique ID. Returns (nil, nil) when absent.
func (r *MongoCourtRepo) GetByID(id string) (*models.Court, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var court models.Court
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&court); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch court with id %s: %w", id, err)
	}
	return &court, nil
}

// GetAll retrieves courts matching the given filter.
func (r *MongoCourtRepo) GetAll(filter bson.M) ([]models.Court, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	if filter == nil {
		filter = bson.M{}
	}
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve courts: %w", err)
	}
	defer cursor.Close(ctx)

	var courts []models.Court
	if err := cursor.All(ctx, &courts); err != nil {
		return nil, fmt.Errorf("failed to decode courts: %w", err)
	}
	return courts, nil
}

// SetActive flips the court's active flag.
func (r *MongoCourtRepo) SetActive(id string, active bool) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"is_active":  active,
		"updated_at": time.Now(),
	}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update active flag for court %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return ErrNoMatch
	}
	return nil
}

// AddRating folds a new score into the court's rating aggregate.
func (r *MongoCourtRepo) AddRating(id string, score int) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{
		"$inc": bson.M{"rating_sum": score, "rating_count": 1},
		"$set": bson.M{"updated_at": time.Now()},
	}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to add rating for court %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return ErrNoMatch
	}
	return nil
}
