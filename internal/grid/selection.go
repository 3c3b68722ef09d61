package grid

// Phase is the state of the selection machine.
type Phase int

const (
	Idle Phase = iota
	Dragging
)

func (p Phase) String() string {
	if p == Dragging {
		return "dragging"
	}
	return "idle"
}

// Selection is the state of a pointer-driven interval selection. Start and
// End are kept in drag order; End may be before Start while dragging upward.
// Use Normalized before handing the interval to anything else.
type Selection struct {
	Phase  Phase
	Active bool
	Start  int
	End    int
	// DayIndex is fixed when the drag begins; weekly selections never span days.
	DayIndex int
	Anchor   Point
}

// Interval is a normalized selection: Start <= End.
type Interval struct {
	Start    int   `json:"start" yaml:"start"`
	End      int   `json:"end" yaml:"end"`
	DayIndex int   `json:"day_index" yaml:"day_index"`
	Anchor   Point `json:"anchor" yaml:"anchor"`
}

// Len returns End - Start.
func (i Interval) Len() int {
	return i.End - i.Start
}

// Normalized returns s with its ends ordered, or false when nothing is selected.
func (s Selection) Normalized() (Interval, bool) {
	if !s.Active {
		return Interval{}, false
	}
	start, end := s.Start, s.End
	if end < start {
		start, end = end, start
	}
	return Interval{Start: start, End: end, DayIndex: s.DayIndex, Anchor: s.Anchor}, true
}

// Committable reports whether s is a finished selection at least threshold
// minutes long.
func (s Selection) Committable(threshold int) bool {
	return s.Active && s.Phase == Idle && abs(s.End-s.Start) >= threshold
}

// Event is a pointer or control input to the selection machine.
type Event interface {
	isEvent()
}

// PointerDown begins a drag at Minutes in day column DayIndex.
type PointerDown struct {
	Minutes  int
	DayIndex int
	Anchor   Point
}

// PointerMove moves the free end of an in-progress drag.
type PointerMove struct {
	Minutes int
	Anchor  Point
}

// PointerUp ends the drag and releases pointer capture.
type PointerUp struct{}

// Click follows PointerUp; a click that barely moved discards the selection.
type Click struct{}

// Clear cancels any selection without side effects.
type Clear struct{}

// Leave is the pointer leaving the tracked container.
type Leave struct{}

func (PointerDown) isEvent() {}
func (PointerMove) isEvent() {}
func (PointerUp) isEvent()   {}
func (Click) isEvent()       {}
func (Clear) isEvent()       {}
func (Leave) isEvent()       {}

// Transition returns the state after applying ev to s. It has no side effects.
func (c Config) Transition(s Selection, ev Event) Selection {
	switch ev := ev.(type) {
	case PointerDown:
		// The first press after a finished drag only dismisses it.
		if s.Active && s.Phase == Idle {
			return Selection{}
		}
		return Selection{
			Phase:    Dragging,
			Active:   true,
			Start:    ev.Minutes,
			End:      ev.Minutes,
			DayIndex: ev.DayIndex,
			Anchor:   ev.Anchor,
		}

	case PointerMove:
		if s.Phase != Dragging {
			return s
		}
		s.End = ev.Minutes
		s.Anchor = ev.Anchor
		return s

	case PointerUp, Leave:
		// Leave releases capture defensively if the drag was abandoned outside.
		if s.Phase != Dragging {
			return s
		}
		s.Phase = Idle
		return s

	case Click:
		if s.Phase == Idle && s.Active && abs(s.End-s.Start) < c.ClickThreshold {
			return Selection{}
		}
		return s

	case Clear:
		return Selection{}
	}
	return s
}

// Machine holds selection state for one mounted grid view. It is not safe
// for concurrent use; it is driven from the UI event loop.
type Machine struct {
	cfg   Config
	state Selection
}

// NewMachine returns an idle Machine.
func NewMachine(cfg Config) *Machine {
	return &Machine{cfg: cfg}
}

// Dispatch applies ev and returns the new state.
func (m *Machine) Dispatch(ev Event) Selection {
	m.state = m.cfg.Transition(m.state, ev)
	return m.state
}

// State returns the raw state.
func (m *Machine) State() Selection {
	return m.state
}

// Dragging reports whether a drag is in progress.
func (m *Machine) Dragging() bool {
	return m.state.Phase == Dragging
}

// Normalized returns the current selection with ordered ends.
func (m *Machine) Normalized() (Interval, bool) {
	return m.state.Normalized()
}

// Commit hands out the finished selection and returns to idle. It returns
// false, leaving the state alone, while dragging or when the selection is
// shorter than the click threshold.
func (m *Machine) Commit() (Interval, bool) {
	if !m.state.Committable(m.cfg.ClickThreshold) {
		return Interval{}, false
	}
	iv, _ := m.state.Normalized()
	m.state = Selection{}
	return iv, true
}

// Cancel drops any selection.
func (m *Machine) Cancel() {
	m.state = m.cfg.Transition(m.state, Clear{})
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
