package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSlotsTodayMarksPastStartsUnavailable(t *testing.T) {
	hours := OperatingHours{Open: 360, Close: 1320} // 06:00-22:00
	nowMinutes := 8*60 + 30                         // 08:30

	slots := GenerateSlots(hours, nil, nowMinutes, true)
	require.Len(t, slots, 16)

	assert.Equal(t, 360, slots[0].Start)
	assert.Equal(t, "06:00", slots[0].StartTime)
	assert.Equal(t, 21*60, slots[len(slots)-1].Start, "last start should be 21:00 for a 22:00 close")

	for _, s := range slots {
		switch {
		case s.Start <= nowMinutes:
			assert.False(t, s.Available, "slot %s starts at or before now", s.StartTime)
		default:
			assert.True(t, s.Available, "slot %s is in the future", s.StartTime)
		}
	}
	// 06:00, 07:00, 08:00 are past; 09:00 onward bookable.
	assert.False(t, slots[0].Available)
	assert.False(t, slots[1].Available)
	assert.False(t, slots[2].Available)
	assert.True(t, slots[3].Available)
}

func TestGenerateSlotsLateCloseTruncatesFinalSlot(t *testing.T) {
	hours := OperatingHours{Open: 360, Close: 1439} // 06:00-23:59

	slots := GenerateSlots(hours, nil, 0, false)
	require.NotEmpty(t, slots)

	last := slots[len(slots)-1]
	assert.Equal(t, 23*60, last.Start)
	assert.Equal(t, 1439, last.End)
	assert.Equal(t, "23:00", last.StartTime)
	assert.Equal(t, "23:59", last.EndTime)
}

func TestGenerateSlotsHalfHourCloseTruncates(t *testing.T) {
	hours := OperatingHours{Open: 600, Close: 1350} // 10:00-22:30

	slots := GenerateSlots(hours, nil, 0, false)
	require.NotEmpty(t, slots)

	last := slots[len(slots)-1]
	assert.Equal(t, 22*60, last.Start)
	assert.Equal(t, 1350, last.End)
	assert.Equal(t, "22:30", last.EndTime)
}

func TestGenerateSlotsMarksReservedHoursUnavailable(t *testing.T) {
	hours := OperatingHours{Open: 360, Close: 1320}
	existing := []Interval{{Start: 14 * 60, End: 16 * 60}} // [14:00, 16:00)

	slots := GenerateSlots(hours, existing, 0, false)

	for _, s := range slots {
		switch s.Start {
		case 14 * 60, 15 * 60:
			assert.False(t, s.Available, "slot %s overlaps the reservation", s.StartTime)
		case 13 * 60, 16 * 60:
			assert.True(t, s.Available, "slot %s touches but does not overlap", s.StartTime)
		}
	}
}

func TestGenerateSlotsIsIdempotent(t *testing.T) {
	hours := OperatingHours{Open: 480, Close: 1200}
	existing := []Interval{{Start: 540, End: 660}}

	first := GenerateSlots(hours, existing, 500, true)
	second := GenerateSlots(hours, existing, 500, true)
	assert.Equal(t, first, second)
}

func TestGenerateSlotsOrderedByStart(t *testing.T) {
	hours := OperatingHours{Open: 360, Close: 1320}
	slots := GenerateSlots(hours, nil, 0, false)
	for i := 1; i < len(slots); i++ {
		assert.Less(t, slots[i-1].Start, slots[i].Start)
	}
}

func TestConflictsWith(t *testing.T) {
	existing := []Interval{
		{Start: 14 * 60, End: 16 * 60},
	}
	assert.True(t, conflictsWith(Interval{Start: 15 * 60, End: 17 * 60}, existing))
	assert.False(t, conflictsWith(Interval{Start: 16 * 60, End: 18 * 60}, existing))
	assert.False(t, conflictsWith(Interval{Start: 12 * 60, End: 14 * 60}, existing))
	assert.False(t, conflictsWith(Interval{Start: 10 * 60, End: 11 * 60}, nil))
}
