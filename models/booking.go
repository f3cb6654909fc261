package models

import "time"

// Booking statuses. Pending and confirmed bookings occupy the calendar;
// cancelled, completed and no-show bookings do not block future bookings.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
	StatusNoShow    = "no-show"
)

// Booking represents a court reservation record.
type Booking struct {
	ID          string    `bson:"id" json:"id"`
	CourtID     string    `bson:"court_id" json:"courtId"`
	UserID      string    `bson:"user_id" json:"userId"`
	Date        string    `bson:"date" json:"date"`       // "YYYY-MM-DD"
	Start       int       `bson:"start" json:"start"`     // minutes from midnight
	End         int       `bson:"end" json:"end"`         // minutes from midnight
	StartTime   string    `bson:"start_time" json:"startTime"` // "HH:MM", denormalized for display
	EndTime     string    `bson:"end_time" json:"endTime"`
	Duration    int       `bson:"duration" json:"duration"` // whole hours, 1..8
	TotalAmount float64   `bson:"total_amount" json:"totalAmount"`
	Status      string    `bson:"status" json:"status"`
	PaymentRef  string    `bson:"payment_ref,omitempty" json:"paymentRef,omitempty"`
	Rating      *Rating   `bson:"rating,omitempty" json:"rating,omitempty"`
	CreatedAt   time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updatedAt"`
}

// IsActive reports whether the booking occupies its time slot.
func (b *Booking) IsActive() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// Rating is a user's score for a completed booking.
type Rating struct {
	Score     int       `bson:"score" json:"score"` // 1..5
	Comment   string    `bson:"comment,omitempty" json:"comment,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}

// BookingInput defines the payload for creating a booking.
type BookingInput struct {
	CourtID   string `json:"courtId" binding:"required"`
	Date      string `json:"date" binding:"required"`      // "YYYY-MM-DD"
	StartTime string `json:"startTime" binding:"required"` // "HH:MM"
	Duration  int    `json:"duration" binding:"required"`  // hours
}

// ConfirmInput carries the payment reference used to confirm a booking.
type ConfirmInput struct {
	PaymentIntentID string `json:"paymentIntentId" binding:"required"`
}

// RatingInput defines the payload for rating a completed booking.
type RatingInput struct {
	Score   int    `json:"score" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}
