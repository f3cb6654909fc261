package court

import (
	"errors"

	"bookmycourt/models"
)

// ErrCourtNotFound indicates the referenced court does not exist.
var ErrCourtNotFound = errors.New("court not found")

// ErrInvalidHours indicates malformed or inverted operating hours.
var ErrInvalidHours = errors.New("invalid operating hours")

// CourtService defines court registry operations.
type CourtService interface {
	Create(input models.CourtInput) (*models.Court, error)
	Update(id string, input models.CourtInput) (*models.Court, error)
	GetByID(id string) (*models.Court, error)
	// List returns active courts, optionally filtered by sport type.
	List(sportType string) ([]models.Court, error)
	// Deactivate soft-deletes a court; existing bookings are untouched.
	Deactivate(id string) error
}
