package timegrid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTimeToPixel(t *testing.T) {
	g := Geometry{StartHour: 6, EndHour: 22, RowsPerHour: 4}

	assert.InDelta(t, 0.0, g.TimeToPixel(6*60), 1e-9)
	assert.InDelta(t, 12.0, g.TimeToPixel(9*60), 1e-9)
	assert.InDelta(t, 1.0, g.TimeToPixel(6*60+15), 1e-9)
	assert.InDelta(t, -4.0, g.TimeToPixel(5*60), 1e-9, "pre-window times map negative")
	assert.InDelta(t, 64.0, g.Height(), 1e-9)
}

func TestPixelToTime_RoundTripsEveryWindowMinute(t *testing.T) {
	geos := []Geometry{
		{StartHour: 6, EndHour: 22, RowsPerHour: 4},
		{StartHour: 0, EndHour: 24, RowsPerHour: 2},
		{StartHour: 8, EndHour: 18, RowsPerHour: 6},
	}
	for _, g := range geos {
		for m := g.WindowStartMin(); m < g.WindowEndMin(); m++ {
			if got := g.PixelToTime(g.TimeToPixel(m), 1); got != m {
				t.Fatalf("geometry %+v: round trip of minute %d gave %d", g, m, got)
			}
		}
	}
}

func TestPixelToTime_FloorsToSnap(t *testing.T) {
	g := Geometry{StartHour: 6, EndHour: 22, RowsPerHour: 4}

	// Row 12.5 is 09:07:30; with a 15-minute snap it floors to 09:00.
	assert.Equal(t, 9*60, g.PixelToTime(12.5, 15))
	// Row 13 is exactly 09:15.
	assert.Equal(t, 9*60+15, g.PixelToTime(13, 15))
}

func TestPixelDeltaToMinutes(t *testing.T) {
	g := Geometry{StartHour: 6, EndHour: 22, RowsPerHour: 4}

	assert.Equal(t, 60, g.PixelDeltaToMinutes(4))
	assert.Equal(t, -30, g.PixelDeltaToMinutes(-2))
	assert.Equal(t, 8, g.PixelDeltaToMinutes(0.5)) // 7.5 rounds up
}

func TestClampToWindow(t *testing.T) {
	g := Geometry{StartHour: 6, EndHour: 22, RowsPerHour: 4}

	assert.Equal(t, 360, g.ClampToWindow(0))
	assert.Equal(t, 1320, g.ClampToWindow(1500))
	assert.Equal(t, 700, g.ClampToWindow(700))
}
