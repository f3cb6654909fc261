package handlers

import (
	userRepo "bookmycourt/database/repository/user"
	"bookmycourt/services/booking"
	"bookmycourt/services/court"
	"bookmycourt/services/notification"
	"bookmycourt/services/realtime"
	"bookmycourt/services/user"
)

// HandlerBundle groups the handlers' service dependencies so route
// registration receives a single value.
type HandlerBundle struct {
	UserService     user.UserService
	CourtService    court.CourtService
	BookingService  booking.BookingService
	Notification    notification.NotificationService
	Hub             *realtime.Hub
	UserRepo        userRepo.UserRepository
}
