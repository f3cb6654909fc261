package booking

import "bookmycourt/models"

// GenerateSlots computes the hourly slot sequence for a court on a date.
// One slot is produced per hour boundary, for every hour h whose nominal
// window [h:00, h+1:00) intersects [open, close); the final slot's end is
// truncated to the closing time. Slots overlapping an existing active
// reservation are marked unavailable. When isToday is true, slots whose
// start is at or before nowMinutes are also marked unavailable rather than
// omitted, so past slots remain visible but non-bookable.
//
// The result is ordered by ascending start and recomputed on every call.
func GenerateSlots(hours OperatingHours, existing []Interval, nowMinutes int, isToday bool) []models.Slot {
	firstHour := hours.Open / 60
	lastHour := (hours.Close - 1) / 60

	slots := make([]models.Slot, 0, lastHour-firstHour+1)
	for h := firstHour; h <= lastHour; h++ {
		slot := Interval{Start: h * 60, End: (h + 1) * 60}
		if slot.End > hours.Close {
			slot.End = hours.Close
		}
		if slot.Start >= slot.End {
			continue
		}

		available := true
		if isToday && slot.Start <= nowMinutes {
			available = false
		}
		if available {
			for _, iv := range existing {
				if slot.Overlaps(iv) {
					available = false
					break
				}
			}
		}

		slots = append(slots, models.Slot{
			Start:     slot.Start,
			End:       slot.End,
			StartTime: FormatTimeOfDay(slot.Start),
			EndTime:   FormatTimeOfDay(slot.End),
			Available: available,
		})
	}
	return slots
}

// conflictsWith reports whether the proposed interval overlaps any of the
// existing ones.
func conflictsWith(proposed Interval, existing []Interval) bool {
	for _, iv := range existing {
		if proposed.Overlaps(iv) {
			return true
		}
	}
	return false
}
