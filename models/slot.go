package models

// Slot is a one-hour (or truncated) candidate booking interval for a court
// on a given date, with an availability flag. Past slots on the current day
// remain listed but are marked unavailable.
type Slot struct {
	Start     int    `json:"start"` // minutes from midnight
	End       int    `json:"end"`
	StartTime string `json:"startTime"` // "HH:MM"
	EndTime   string `json:"endTime"`
	Available bool   `json:"available"`
}

// AvailabilityResponse is the payload for the court availability query.
type AvailabilityResponse struct {
	CourtID   string `json:"courtId"`
	Date      string `json:"date"`
	OpenTime  string `json:"openTime"`
	CloseTime string `json:"closeTime"`
	Slots     []Slot `json:"slots"`
}
