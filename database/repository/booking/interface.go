package bookingRepo

import (
	"errors"

	"go.mongodb.org/mongo-driver/bson"

	"bookmycourt/models"
)

// ErrSlotConflict is returned by Create when the unique active-slot index
// rejects the insert. Callers treat it as a retryable "choose another time"
// condition rather than an incidental index collision.
var ErrSlotConflict = errors.New("booking slot conflict")

// ErrNoMatch is returned by conditional updates when no document matched the
// filter, either because the booking does not exist or because its current
// status does not permit the transition.
var ErrNoMatch = errors.New("no matching booking")

// BookingRepository defines persistence operations for bookings.
type BookingRepository interface {
	// Create inserts a new booking. Returns ErrSlotConflict if an active
	// booking already occupies the same (court, date, start) bucket.
	Create(booking *models.Booking) error
	// Delete removes a booking document outright. Used to roll back an
	// insert that lost the post-insert conflict re-check.
	Delete(id string) error
	GetByID(id string) (*models.Booking, error)
	// FindActiveByCourtDate returns pending and confirmed bookings for the
	// court on the given date, excluding excludeID if non-empty.
	FindActiveByCourtDate(courtID, date, excludeID string) ([]models.Booking, error)
	FindByUser(userID string) ([]models.Booking, error)
	GetAll(filter bson.M) ([]models.Booking, error)
	// UpdateStatus transitions a booking to newStatus, optionally recording
	// extra fields, but only if its current status is one of expectCurrent.
	// Returns ErrNoMatch when the conditional filter matched nothing.
	UpdateStatus(id, newStatus string, extra bson.M, expectCurrent ...string) error
	// SetRating attaches a rating to a completed, not-yet-rated booking.
	// Returns ErrNoMatch otherwise.
	SetRating(id string, rating models.Rating) error
	// CompleteExpired marks confirmed bookings that ended before the given
	// date/time as completed and returns how many were updated.
	CompleteExpired(today string, nowMinutes int) (int64, error)
}
