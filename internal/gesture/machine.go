// Package gesture owns the pointer-driven create and resize gestures for
// the week grid. The machine is a pure reducer over an explicit state value:
// transitions take pointer positions and return proposals or commits for the
// caller to act on. No I/O happens here — persistence and rollback are the
// orchestrator's job, which keeps every transition unit-testable.
package gesture

import (
	"time"

	"github.com/timeflowhq/timeflow/internal/timegrid"
)

// Handle identifies which edge of a block a resize gesture grabbed.
type Handle string

const (
	HandleTop    Handle = "top"
	HandleBottom Handle = "bottom"
)

// Kind discriminates the active gesture. Only one gesture may be active at
// a time; a Begin call while another gesture is live is ignored.
type Kind int

const (
	KindNone Kind = iota
	KindDrag
	KindResize
)

// State is the serializable machine value. Fields beyond Kind are only
// meaningful for the matching gesture kind.
type State struct {
	Kind Kind

	// Drag (create gesture)
	Day       time.Time
	OriginPx  float64
	CurrentPx float64

	// Resize
	EntryID      string
	Handle       Handle
	OrigStartMin int
	OrigEndMin   int
	CurStartMin  int
	CurEndMin    int
}

// CreateProposal is the outcome of a completed create gesture: the snapped
// time range the creation dialog should be pre-filled with.
type CreateProposal struct {
	Day      time.Time
	StartMin int
	EndMin   int
}

// DurationMin returns the proposal's length in minutes.
func (p CreateProposal) DurationMin() int { return p.EndMin - p.StartMin }

// ResizeCommit is the outcome of a completed resize gesture: the snapped
// edges to persist plus the pre-gesture snapshot for rollback.
type ResizeCommit struct {
	EntryID  string
	StartMin int
	EndMin   int
	Hours    float64

	OrigStartMin int
	OrigEndMin   int
	OrigHours    float64
}

// Machine runs both gesture state machines against one grid geometry.
type Machine struct {
	Geo            timegrid.Geometry
	SnapMin        int
	MinDurationMin int

	state State
}

// NewMachine returns a machine with the standard 15-minute snap interval
// and minimum duration.
func NewMachine(g timegrid.Geometry) *Machine {
	return &Machine{Geo: g, SnapMin: 15, MinDurationMin: 15}
}

// State returns the current machine value, for rendering.
func (m *Machine) State() State { return m.state }

// Active reports whether any gesture is in progress.
func (m *Machine) Active() bool { return m.state.Kind != KindNone }

// ── create gesture ───────────────────────────────────────────────────────────

// BeginDrag starts a create gesture on the given day column. Returns false
// (ignored) when another gesture is already active.
func (m *Machine) BeginDrag(day time.Time, px float64) bool {
	if m.state.Kind != KindNone {
		return false
	}
	m.state = State{Kind: KindDrag, Day: day, OriginPx: px, CurrentPx: px}
	return true
}

// MoveDrag tracks the pointer during a create gesture.
func (m *Machine) MoveDrag(px float64) {
	if m.state.Kind != KindDrag {
		return
	}
	m.state.CurrentPx = px
}

// EndDrag completes the create gesture. The dragged range is resolved at
// minute resolution first; anything shorter than the minimum duration
// silently cancels. Otherwise the start floor-snaps and the end ceil-snaps
// to the snap interval, so a 09:00–09:40 drag proposes 09:00–09:45.
// Idempotent: after the first call the machine is idle and further calls
// report ok=false.
func (m *Machine) EndDrag(px float64) (CreateProposal, bool) {
	if m.state.Kind != KindDrag {
		return CreateProposal{}, false
	}
	day := m.state.Day
	lo, hi := m.state.OriginPx, px
	if hi < lo {
		lo, hi = hi, lo
	}
	m.state = State{}

	rawStart := m.Geo.ClampToWindow(m.Geo.PixelToTime(lo, 1))
	rawEnd := m.Geo.ClampToWindow(m.Geo.PixelToTime(hi, 1))
	if rawEnd-rawStart < m.MinDurationMin {
		return CreateProposal{}, false
	}
	return CreateProposal{
		Day:      day,
		StartMin: timegrid.SnapFloor(rawStart, m.SnapMin),
		EndMin:   min(timegrid.SnapCeil(rawEnd, m.SnapMin), m.Geo.WindowEndMin()),
	}, true
}

// DoubleClick is the bare-click shorthand: a 60-minute proposal starting at
// the clicked, floor-snapped time, pulled back inside the window when the
// hour would run past it. Returns ok=false while another gesture is active.
func (m *Machine) DoubleClick(day time.Time, px float64) (CreateProposal, bool) {
	if m.state.Kind != KindNone {
		return CreateProposal{}, false
	}
	start := m.Geo.ClampToWindow(m.Geo.PixelToTime(px, m.SnapMin))
	end := start + 60
	if end > m.Geo.WindowEndMin() {
		end = m.Geo.WindowEndMin()
		if end-start < m.MinDurationMin {
			start = end - m.MinDurationMin
		}
	}
	return CreateProposal{Day: day, StartMin: start, EndMin: end}, true
}

// SelectionRect returns the visual selection rectangle of an in-progress
// create gesture, in rows from the grid top.
func (m *Machine) SelectionRect() (day time.Time, top, height float64, ok bool) {
	if m.state.Kind != KindDrag {
		return time.Time{}, 0, 0, false
	}
	lo, hi := m.state.OriginPx, m.state.CurrentPx
	if hi < lo {
		lo, hi = hi, lo
	}
	return m.state.Day, lo, hi - lo, true
}

// ── resize gesture ───────────────────────────────────────────────────────────

// BeginResize starts a resize gesture on one edge of an existing entry,
// capturing the pre-gesture edges for optimistic rollback. Returns false
// when another gesture is already active.
func (m *Machine) BeginResize(entryID string, handle Handle, startMin, endMin int, px float64) bool {
	if m.state.Kind != KindNone {
		return false
	}
	m.state = State{
		Kind:         KindResize,
		EntryID:      entryID,
		Handle:       handle,
		OrigStartMin: startMin,
		OrigEndMin:   endMin,
		CurStartMin:  startMin,
		CurEndMin:    endMin,
		OriginPx:     px,
	}
	return true
}

// MoveResize applies the pointer delta to the captured edge without
// snapping, for visually smooth feedback. The edge is clamped to the
// window; when the duration would drop below the minimum the opposite edge
// is pushed along to preserve it. Returns the entry's optimistic edges.
func (m *Machine) MoveResize(px float64) (startMin, endMin int, ok bool) {
	if m.state.Kind != KindResize {
		return 0, 0, false
	}
	delta := m.Geo.PixelDeltaToMinutes(px - m.state.OriginPx)
	s, e := m.applyEdgeDelta(delta)
	m.state.CurStartMin, m.state.CurEndMin = s, e
	return s, e, true
}

// EndResize completes the gesture: both edges snap independently to the
// nearest snap multiple, re-clamped to the window and the minimum duration.
// The machine returns to idle on the first call, so a duplicate pointer-up
// (element listener plus global listener) reports ok=false instead of
// producing a second commit.
func (m *Machine) EndResize(px float64) (ResizeCommit, bool) {
	if m.state.Kind != KindResize {
		return ResizeCommit{}, false
	}
	delta := m.Geo.PixelDeltaToMinutes(px - m.state.OriginPx)
	rawStart, rawEnd := m.applyEdgeDelta(delta)
	st := m.state
	m.state = State{}

	s := m.Geo.ClampToWindow(timegrid.SnapNearest(rawStart, m.SnapMin))
	e := m.Geo.ClampToWindow(timegrid.SnapNearest(rawEnd, m.SnapMin))
	s, e = m.enforceMin(s, e, st.Handle)

	return ResizeCommit{
		EntryID:      st.EntryID,
		StartMin:     s,
		EndMin:       e,
		Hours:        timegrid.MinutesToHours(e - s),
		OrigStartMin: st.OrigStartMin,
		OrigEndMin:   st.OrigEndMin,
		OrigHours:    timegrid.MinutesToHours(st.OrigEndMin - st.OrigStartMin),
	}, true
}

// applyEdgeDelta moves the captured edge by delta minutes from its
// pre-gesture position and restores the window/minimum invariants.
func (m *Machine) applyEdgeDelta(delta int) (int, int) {
	s, e := m.state.OrigStartMin, m.state.OrigEndMin
	switch m.state.Handle {
	case HandleTop:
		s = m.Geo.ClampToWindow(s + delta)
	case HandleBottom:
		e = m.Geo.ClampToWindow(e + delta)
	}
	return m.enforceMin(s, e, m.state.Handle)
}

// enforceMin guarantees the minimum duration by pushing the edge opposite
// the handle, falling back to the handle edge when the window boundary
// leaves no room.
func (m *Machine) enforceMin(s, e int, handle Handle) (int, int) {
	if e-s >= m.MinDurationMin {
		return s, e
	}
	switch handle {
	case HandleTop:
		e = s + m.MinDurationMin
		if e > m.Geo.WindowEndMin() {
			e = m.Geo.WindowEndMin()
			s = e - m.MinDurationMin
		}
	case HandleBottom:
		s = e - m.MinDurationMin
		if s < m.Geo.WindowStartMin() {
			s = m.Geo.WindowStartMin()
			e = s + m.MinDurationMin
		}
	}
	return s, e
}
