package timegrid

import "github.com/timeflowhq/timeflow/internal/domain"

// Block is the computed rectangle of a time entry on a day column.
// Top and Height are in rows from the top of the grid. The clipped flags
// mark entries whose true start/end lies outside the visible window; the
// underlying entry is never truncated.
type Block struct {
	Entry         *domain.TimeEntry
	Top           float64
	Height        float64
	TopClipped    bool
	BottomClipped bool
}

// LayoutConfig holds the display tuning for block rectangles.
type LayoutConfig struct {
	// Padding is subtracted from both ends of a block so adjacent
	// blocks show a visual seam.
	Padding float64
	// MinBlockHeight is the floor applied to every rendered block so
	// short entries remain visible and grabbable.
	MinBlockHeight float64
}

// DefaultLayout keeps a quarter-row seam and never renders a block thinner
// than one row.
var DefaultLayout = LayoutConfig{Padding: 0.25, MinBlockHeight: 1}

// CalcBlock computes the visible rectangle for one entry, clamped to the
// geometry's window. ok is false when the entry has no start time or no
// visible extent, in which case it is omitted from rendering (but stays in
// the data set and in daily totals).
func CalcBlock(g Geometry, cfg LayoutConfig, e *domain.TimeEntry) (Block, bool) {
	if e.StartMin == nil {
		return Block{}, false
	}
	start := *e.StartMin
	end := e.EffectiveEndMin()

	visibleStart := start
	if visibleStart < g.WindowStartMin() {
		visibleStart = g.WindowStartMin()
	}
	visibleEnd := end
	if visibleEnd > g.WindowEndMin() {
		visibleEnd = g.WindowEndMin()
	}
	visibleDuration := visibleEnd - visibleStart
	if visibleDuration <= 0 {
		return Block{}, false
	}

	height := g.DurationToPixels(visibleDuration) - 2*cfg.Padding
	if height < cfg.MinBlockHeight {
		height = cfg.MinBlockHeight
	}

	return Block{
		Entry:         e,
		Top:           g.TimeToPixel(visibleStart) + cfg.Padding,
		Height:        height,
		TopClipped:    start < g.WindowStartMin(),
		BottomClipped: end > g.WindowEndMin(),
	}, true
}

// LayoutDay positions one day's entries on the grid. Overlapping entries
// yield overlapping rectangles; callers paint them in slice order so the
// later block wins. Entries without a start time or entirely outside the
// window are skipped.
func LayoutDay(g Geometry, cfg LayoutConfig, entries []*domain.TimeEntry) []Block {
	var blocks []Block
	for _, e := range entries {
		if b, ok := CalcBlock(g, cfg, e); ok {
			blocks = append(blocks, b)
		}
	}
	return blocks
}
