package timegrid

import "math"

// Geometry maps the visible time window [StartHour, EndHour) onto vertical
// cell offsets at RowsPerHour rows per hour. Offsets are float64 so the
// time→row→time round trip stays exact at minute resolution; callers
// truncate to whole terminal rows only when painting.
type Geometry struct {
	StartHour   int
	EndHour     int
	RowsPerHour float64
}

// DefaultGeometry is the 06:00–22:00 window at 4 rows per hour
// (one row per 15-minute snap unit).
var DefaultGeometry = Geometry{StartHour: 6, EndHour: 22, RowsPerHour: 4}

// WindowStartMin returns the first visible minute of the day.
func (g Geometry) WindowStartMin() int { return g.StartHour * 60 }

// WindowEndMin returns the first minute past the visible window.
func (g Geometry) WindowEndMin() int { return g.EndHour * 60 }

// Height returns the total grid height in rows.
func (g Geometry) Height() float64 {
	return float64(g.EndHour-g.StartHour) * g.RowsPerHour
}

// TimeToPixel converts minutes since midnight to a vertical offset from the
// top of the grid. Times before the window map to negative offsets.
func (g Geometry) TimeToPixel(minutes int) float64 {
	return float64(minutes-g.WindowStartMin()) / 60 * g.RowsPerHour
}

// DurationToPixels converts a duration in minutes to a height in rows.
func (g Geometry) DurationToPixels(minutes int) float64 {
	return float64(minutes) / 60 * g.RowsPerHour
}

// PixelToTime inverts TimeToPixel, flooring the result to the nearest
// multiple of snapMinutes. The raw offset is rounded to whole minutes first
// so TimeToPixel/PixelToTime round-trip exactly at snap 1.
func (g Geometry) PixelToTime(px float64, snapMinutes int) int {
	raw := g.WindowStartMin() + int(math.Round(px/g.RowsPerHour*60))
	return SnapFloor(raw, snapMinutes)
}

// PixelDeltaToMinutes converts a vertical offset delta to a signed minute
// delta, rounded to the nearest minute. Used for raw (unsnapped) resize
// feedback.
func (g Geometry) PixelDeltaToMinutes(deltaPx float64) int {
	return int(math.Round(deltaPx / g.RowsPerHour * 60))
}

// ClampToWindow restricts minutes to [WindowStartMin, WindowEndMin].
func (g Geometry) ClampToWindow(minutes int) int {
	if minutes < g.WindowStartMin() {
		return g.WindowStartMin()
	}
	if minutes > g.WindowEndMin() {
		return g.WindowEndMin()
	}
	return minutes
}
