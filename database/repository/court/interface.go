package courtRepo

import (
	"go.mongodb.org/mongo-driver/bson"

	"bookmycourt/models"
)

// CourtRepository defines persistence operations for courts.
type CourtRepository interface {
	Create(court *models.Court) error
	Update(court *models.Court) error
	// GetByID retrieves a court by its ID. Returns (nil, nil) when absent.
	GetByID(id string) (*models.Court, error)
	// GetAll returns courts matching the filter, e.g. active courts of a sport.
	GetAll(filter bson.M) ([]models.Court, error)
	// SetActive flips the court's active flag.
	SetActive(id string, active bool) error
	// AddRating folds a new score into the court's rating aggregate.
	AddRating(id string, score int) error
}
