package models

import "time"

// Notification event types pushed over the realtime channel.
const (
	NotificationBroadcast        = "broadcast"
	NotificationBookingConfirmed = "booking_confirmed"
	NotificationBookingCancelled = "booking_cancelled"
)

// Notification is a message fanned out to connected clients.
type Notification struct {
	Type      string    `json:"type"`
	Title     string    `json:"title,omitempty"`
	Message   string    `json:"message"`
	CourtID   string    `json:"courtId,omitempty"`
	BookingID string    `json:"bookingId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Booking email kinds carried in queued email tasks.
const (
	EmailBookingConfirmed = "confirmed"
	EmailBookingCancelled = "cancelled"
)

// BookingEmailPayload is the serialized body of a queued booking email task.
type BookingEmailPayload struct {
	Kind    string  `json:"kind"`
	User    User    `json:"user"`
	Booking Booking `json:"booking"`
	Court   Court   `json:"court"`
}

// BroadcastInput defines the payload for an admin broadcast.
type BroadcastInput struct {
	Title   string `json:"title"`
	Message string `json:"message" binding:"required"`
}
