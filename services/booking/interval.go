package booking

import (
	"fmt"
	"regexp"
)

// Times of day are handled as minutes from midnight (e.g., 420 for 7:00 AM),
// matching how bookings are persisted. Intervals are half-open [start, end).

const minutesPerDay = 24 * 60

var timeOfDayPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):([0-5][0-9])$`)

// ParseTimeOfDay converts an "HH:MM" 24-hour string to minutes from midnight.
func ParseTimeOfDay(s string) (int, error) {
	m := timeOfDayPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("invalid time of day %q, expected HH:MM", s)
	}
	var hours, minutes int
	fmt.Sscanf(m[1], "%d", &hours)
	fmt.Sscanf(m[2], "%d", &minutes)
	return hours*60 + minutes, nil
}

// FormatTimeOfDay renders minutes from midnight as "HH:MM".
func FormatTimeOfDay(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// Interval is a half-open time-of-day range [Start, End) in minutes from
// midnight. Start < End always holds for valid intervals.
type Interval struct {
	Start int
	End   int
}

// Valid reports whether the interval is non-empty and within the day.
func (iv Interval) Valid() bool {
	return iv.Start >= 0 && iv.Start < iv.End && iv.End <= minutesPerDay
}

// Overlaps reports whether two half-open intervals intersect.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start < other.End && other.Start < iv.End
}

// OperatingHours is a court's (open, close) window for a day.
type OperatingHours struct {
	Open  int
	Close int
}

// operatingHoursFrom parses a court's configured hours, falling back to the
// given defaults when unset.
func operatingHoursFrom(openStr, closeStr, defaultOpen, defaultClose string) (OperatingHours, error) {
	if openStr == "" {
		openStr = defaultOpen
	}
	if closeStr == "" {
		closeStr = defaultClose
	}
	open, err := ParseTimeOfDay(openStr)
	if err != nil {
		return OperatingHours{}, fmt.Errorf("invalid opening time: %w", err)
	}
	close, err := ParseTimeOfDay(closeStr)
	if err != nil {
		return OperatingHours{}, fmt.Errorf("invalid closing time: %w", err)
	}
	if open >= close {
		return OperatingHours{}, fmt.Errorf("opening time %s is not before closing time %s", openStr, closeStr)
	}
	return OperatingHours{Open: open, Close: close}, nil
}
