package timegrid

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestToISODate_UsesLocalWallClock(t *testing.T) {
	loc := time.FixedZone("UTC+12", 12*3600)
	// 00:30 local on Jan 2 is still Jan 1 in UTC; the ISO date must not shift.
	d := time.Date(2024, 1, 2, 0, 30, 0, 0, loc)
	assert.Equal(t, "2024-01-02", ToISODate(d))
}

func TestStartOfWeek(t *testing.T) {
	tests := []struct {
		name    string
		date    time.Time
		startOn time.Weekday
		want    string
	}{
		{
			name:    "wednesday back to monday",
			date:    time.Date(2024, 1, 17, 15, 30, 0, 0, time.Local),
			startOn: time.Monday,
			want:    "2024-01-15",
		},
		{
			name:    "monday stays monday",
			date:    time.Date(2024, 1, 15, 0, 0, 0, 0, time.Local),
			startOn: time.Monday,
			want:    "2024-01-15",
		},
		{
			name:    "sunday belongs to week starting previous monday",
			date:    time.Date(2024, 1, 21, 23, 59, 0, 0, time.Local),
			startOn: time.Monday,
			want:    "2024-01-15",
		},
		{
			name:    "sunday start keeps sunday",
			date:    time.Date(2024, 1, 21, 10, 0, 0, 0, time.Local),
			startOn: time.Sunday,
			want:    "2024-01-21",
		},
		{
			name:    "wednesday back to sunday",
			date:    time.Date(2024, 1, 17, 8, 0, 0, 0, time.Local),
			startOn: time.Sunday,
			want:    "2024-01-14",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StartOfWeek(tt.date, tt.startOn)
			assert.Equal(t, tt.want, ToISODate(got))
			assert.Equal(t, 0, got.Hour(), "week start must be midnight")
		})
	}
}

func TestClockTimeToMinutes(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"00:00", 0},
		{"09:00", 540},
		{"09:05", 545},
		{"23:59", 1439},
		{"09:00:00", 540}, // trailing seconds tolerated
		{"", NoClockTime},
		{"9", NoClockTime},
		{"25:00", NoClockTime},
		{"12:60", NoClockTime},
		{"ab:cd", NoClockTime},
		{"12:00:00:00", NoClockTime},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClockTimeToMinutes(tt.in), "input %q", tt.in)
	}
}

func TestMinutesToClockTime_ZeroPadded(t *testing.T) {
	assert.Equal(t, "06:00", MinutesToClockTime(360))
	assert.Equal(t, "09:05", MinutesToClockTime(545))
	assert.Equal(t, "00:00", MinutesToClockTime(0))
}

func TestMinutesToHours_TwoDecimals(t *testing.T) {
	assert.InDelta(t, 0.75, MinutesToHours(45), 1e-9)
	assert.InDelta(t, 0.67, MinutesToHours(40), 1e-9) // 40/60 rounds to 0.67
	assert.InDelta(t, 2.0, MinutesToHours(120), 1e-9)
	assert.InDelta(t, 0.1, MinutesToHours(6), 1e-9) // 6-minute granularity
}

func TestSnapHelpers(t *testing.T) {
	assert.Equal(t, 540, SnapFloor(553, 15))
	assert.Equal(t, 555, SnapCeil(541, 15))
	assert.Equal(t, 540, SnapCeil(540, 15), "exact multiple stays put")
	assert.Equal(t, 720, SnapNearest(713, 15)) // 11:53 -> 12:00
	assert.Equal(t, 705, SnapNearest(710, 15))
	assert.Equal(t, 553, SnapFloor(553, 1), "snap 1 is identity")
}
