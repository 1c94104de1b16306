package timegrid

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timeflowhq/timeflow/internal/domain"
)

func intPtr(v int) *int { return &v }

func timedEntry(startMin, endMin int) *domain.TimeEntry {
	e := &domain.TimeEntry{
		ID:       "e1",
		Date:     time.Date(2024, 1, 15, 0, 0, 0, 0, time.Local),
		StartMin: intPtr(startMin),
		EndMin:   intPtr(endMin),
	}
	e.RecomputeHours()
	return e
}

func TestCalcBlock_BasicRectangle(t *testing.T) {
	g := Geometry{StartHour: 6, EndHour: 22, RowsPerHour: 4}
	cfg := LayoutConfig{Padding: 0.25, MinBlockHeight: 1}

	b, ok := CalcBlock(g, cfg, timedEntry(9*60, 11*60))
	require.True(t, ok)
	assert.InDelta(t, 12.25, b.Top, 1e-9)
	assert.InDelta(t, 7.5, b.Height, 1e-9)
	assert.False(t, b.TopClipped)
	assert.False(t, b.BottomClipped)
}

func TestCalcBlock_NeverBelowMinHeight(t *testing.T) {
	g := Geometry{StartHour: 6, EndHour: 22, RowsPerHour: 4}
	cfg := LayoutConfig{Padding: 0.25, MinBlockHeight: 1}

	// 15-minute entry: 1 row minus padding would be 0.5, floored to 1.
	b, ok := CalcBlock(g, cfg, timedEntry(9*60, 9*60+15))
	require.True(t, ok)
	assert.GreaterOrEqual(t, b.Height, cfg.MinBlockHeight)
}

func TestCalcBlock_ClipsToWindowWithoutMutatingEntry(t *testing.T) {
	g := Geometry{StartHour: 6, EndHour: 22, RowsPerHour: 4}
	cfg := DefaultLayout

	e := timedEntry(5*60, 7*60) // starts before the window
	b, ok := CalcBlock(g, cfg, e)
	require.True(t, ok)
	assert.True(t, b.TopClipped)
	assert.False(t, b.BottomClipped)
	assert.InDelta(t, cfg.Padding, b.Top, 1e-9, "visible start clamps to window top")
	assert.Equal(t, 5*60, *e.StartMin, "entry data must not be truncated")

	late := timedEntry(21*60, 23*60) // runs past the window
	b, ok = CalcBlock(g, cfg, late)
	require.True(t, ok)
	assert.False(t, b.TopClipped)
	assert.True(t, b.BottomClipped)
	assert.Equal(t, 23*60, *late.EndMin)
}

func TestCalcBlock_OmitsInvisibleEntries(t *testing.T) {
	g := Geometry{StartHour: 6, EndHour: 22, RowsPerHour: 4}

	_, ok := CalcBlock(g, DefaultLayout, timedEntry(23*60, 23*60+30))
	assert.False(t, ok, "fully past the window")

	_, ok = CalcBlock(g, DefaultLayout, timedEntry(4*60, 5*60))
	assert.False(t, ok, "fully before the window")

	durationOnly := &domain.TimeEntry{ID: "d", HoursWorked: 2}
	_, ok = CalcBlock(g, DefaultLayout, durationOnly)
	assert.False(t, ok, "no start time means no grid position")
}

func TestCalcBlock_EndDefaultsFromHoursWorked(t *testing.T) {
	g := Geometry{StartHour: 6, EndHour: 22, RowsPerHour: 4}

	e := &domain.TimeEntry{
		ID:          "open",
		StartMin:    intPtr(10 * 60),
		HoursWorked: 1.5,
	}
	b, ok := CalcBlock(g, DefaultLayout, e)
	require.True(t, ok)
	assert.InDelta(t, g.DurationToPixels(90)-2*DefaultLayout.Padding, b.Height, 1e-9)
}

func TestLayoutDay_KeepsOverlapsAndSkipsHidden(t *testing.T) {
	g := Geometry{StartHour: 6, EndHour: 22, RowsPerHour: 4}

	entries := []*domain.TimeEntry{
		timedEntry(9*60, 11*60),
		timedEntry(10*60, 12*60), // overlaps the first
		timedEntry(2*60, 3*60),   // invisible
		{ID: "no-times", HoursWorked: 3},
	}
	blocks := LayoutDay(g, DefaultLayout, entries)
	require.Len(t, blocks, 2, "overlapping entries both render; hidden ones drop")
	assert.Less(t, blocks[0].Top, blocks[1].Top)
}
