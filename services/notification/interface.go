package notification

import "bookmycourt/models"

// NotificationService fans booking events out to interested parties: the
// realtime channel always, a queued email when an address is known. Delivery
// failures are retried by the worker, never surfaced to the booking flow.
type NotificationService interface {
	BookingConfirmed(booking *models.Booking, court *models.Court, user *models.User)
	BookingCancelled(booking *models.Booking, court *models.Court, user *models.User)
	Broadcast(title, message string)
}
