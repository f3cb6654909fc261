package booking

import "bookmycourt/models"

// BookingService exposes the availability engine and the booking lifecycle.
type BookingService interface {
	// Availability returns the ordered hourly slot sequence for a court on a
	// date, plus the court's opening and closing times.
	Availability(courtID, date string) (*models.AvailabilityResponse, error)
	// Create validates a booking request, checks for conflicts and persists
	// it in pending status with its computed total amount.
	Create(userID string, input models.BookingInput) (*models.Booking, error)
	// Confirm verifies payment, re-checks conflicts excluding the booking
	// itself and transitions pending to confirmed.
	Confirm(userID, bookingID, paymentIntentID string) (*models.Booking, error)
	// Cancel transitions a confirmed booking to cancelled, allowed only
	// while its start is strictly more than two hours away.
	Cancel(userID, bookingID string) (*models.Booking, error)
	// Rate attaches a one-time rating to a completed booking and folds the
	// score into the court's aggregate.
	Rate(userID, bookingID string, input models.RatingInput) (*models.Booking, error)
	ListForUser(userID string) ([]models.Booking, error)
	// ListAll returns every booking, newest first. Admin use.
	ListAll() ([]models.Booking, error)
	// AdminUpdateStatus transitions a confirmed booking to completed or
	// no-show. Admin use.
	AdminUpdateStatus(bookingID, newStatus string) (*models.Booking, error)
}
