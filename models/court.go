package models

import "time"

// Court represents a bookable sports court.
type Court struct {
	ID           string    `bson:"id" json:"id"`
	Name         string    `bson:"name" json:"name"`
	SportType    string    `bson:"sport_type" json:"sportType"`             // e.g., "badminton", "tennis", "futsal"
	Description  string    `bson:"description,omitempty" json:"description,omitempty"`
	Location     string    `bson:"location,omitempty" json:"location,omitempty"`
	PricePerHour float64   `bson:"price_per_hour" json:"pricePerHour"`
	OpenTime     string    `bson:"open_time" json:"openTime"`   // "HH:MM", defaults to 06:00
	CloseTime    string    `bson:"close_time" json:"closeTime"` // "HH:MM", defaults to 22:00
	Images       []string  `bson:"images,omitempty" json:"images,omitempty"`
	IsActive     bool      `bson:"is_active" json:"isActive"`
	RatingSum    int       `bson:"rating_sum" json:"-"`
	RatingCount  int       `bson:"rating_count" json:"ratingCount"`
	// AvgRating is computed from the aggregate on read, never stored.
	AvgRating float64   `bson:"-" json:"averageRating"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// DefaultOpenTime and DefaultCloseTime apply when a court has no operating
// hours configured.
const (
	DefaultOpenTime  = "06:00"
	DefaultCloseTime = "22:00"
)

// AverageRating returns the mean of all ratings received, or 0 if unrated.
func (c *Court) AverageRating() float64 {
	if c.RatingCount == 0 {
		return 0
	}
	return float64(c.RatingSum) / float64(c.RatingCount)
}

// CourtInput defines the payload for creating or updating a court.
type CourtInput struct {
	Name         string   `json:"name" binding:"required"`
	SportType    string   `json:"sportType" binding:"required"`
	Description  string   `json:"description"`
	Location     string   `json:"location"`
	PricePerHour float64  `json:"pricePerHour" binding:"required,gt=0"`
	OpenTime     string   `json:"openTime"`
	CloseTime    string   `json:"closeTime"`
	Images       []string `json:"images"`
}
