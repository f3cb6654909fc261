package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTimeOfDay(t *testing.T) {
	cases := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"06:00", 360, false},
		{"23:59", 1439, false},
		{"14:30", 870, false},
		{"24:00", 0, true},
		{"9:00", 0, true},
		{"12:60", 0, true},
		{"noon", 0, true},
		{"", 0, true},
	}
	for _, tc := range cases {
		got, err := ParseTimeOfDay(tc.in)
		if tc.wantErr {
			assert.Error(t, err, "input %q", tc.in)
		} else {
			assert.NoError(t, err, "input %q", tc.in)
			assert.Equal(t, tc.want, got, "input %q", tc.in)
		}
	}
}

func TestFormatTimeOfDay(t *testing.T) {
	assert.Equal(t, "06:00", FormatTimeOfDay(360))
	assert.Equal(t, "23:59", FormatTimeOfDay(1439))
	assert.Equal(t, "00:05", FormatTimeOfDay(5))
}

func TestIntervalOverlapSymmetry(t *testing.T) {
	a := Interval{Start: 540, End: 660}  // 09:00-11:00
	b := Interval{Start: 600, End: 720}  // 10:00-12:00
	c := Interval{Start: 660, End: 780}  // 11:00-13:00

	assert.Equal(t, a.Overlaps(b), b.Overlaps(a))
	assert.Equal(t, a.Overlaps(c), c.Overlaps(a))
	assert.True(t, a.Overlaps(b))
	assert.False(t, a.Overlaps(c))
}

func TestIntervalSelfOverlap(t *testing.T) {
	a := Interval{Start: 540, End: 600}
	assert.True(t, a.Overlaps(a))
}

func TestIntervalTouchingBoundariesDoNotOverlap(t *testing.T) {
	booked := Interval{Start: 540, End: 600}   // [09:00, 10:00)
	adjacent := Interval{Start: 600, End: 660} // [10:00, 11:00)
	straddle := Interval{Start: 570, End: 630} // [09:30, 10:30)

	assert.False(t, booked.Overlaps(adjacent))
	assert.True(t, booked.Overlaps(straddle))
}

func TestIntervalValid(t *testing.T) {
	assert.True(t, Interval{Start: 0, End: 60}.Valid())
	assert.True(t, Interval{Start: 1380, End: 1440}.Valid())
	assert.False(t, Interval{Start: 600, End: 600}.Valid())
	assert.False(t, Interval{Start: 660, End: 600}.Valid())
	assert.False(t, Interval{Start: 1380, End: 1500}.Valid())
}

func TestOperatingHoursFrom(t *testing.T) {
	hours, err := operatingHoursFrom("", "", "06:00", "22:00")
	assert.NoError(t, err)
	assert.Equal(t, OperatingHours{Open: 360, Close: 1320}, hours)

	hours, err = operatingHoursFrom("08:00", "23:59", "06:00", "22:00")
	assert.NoError(t, err)
	assert.Equal(t, OperatingHours{Open: 480, Close: 1439}, hours)

	_, err = operatingHoursFrom("22:00", "06:00", "06:00", "22:00")
	assert.Error(t, err)
}
