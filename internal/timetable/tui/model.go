package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/chris/planner/internal/db"
	"github.com/chris/planner/internal/grid"
	"github.com/chris/planner/internal/log"
	"github.com/chris/planner/internal/timetable"
	"github.com/chris/planner/pkg/models"
)

// ViewState represents which grid is currently displayed
type ViewState int

const (
	DailyView ViewState = iota
	WeeklyView
)

// Model represents the TUI state
type Model struct {
	// Database
	dbPath string

	// Layout
	cfg         grid.Config
	viewState   ViewState
	currentDate time.Time
	entries     []models.Entry
	daily       timetable.Daily
	weekly      timetable.Weekly

	// Interaction
	selection *grid.Machine
	hover     *grid.Hover
	hoverDay  int
	showHelp  bool
	status    string

	// Current time, advanced by NowMsg
	current time.Time

	// UI dimensions
	width  int
	height int

	// Focus
	focused bool

	// For testing - allows injecting "now"
	now func() time.Time
}

// Option is a functional option for configuring the Model
type Option func(*Model)

// WithNow sets the function used to get the current time (for testing)
func WithNow(fn func() time.Time) Option {
	return func(m *Model) {
		m.now = fn
	}
}

// WithView selects the initial view
func WithView(vs ViewState) Option {
	return func(m *Model) {
		m.viewState = vs
	}
}

// WithDate sets the initial grid date instead of today
func WithDate(date time.Time) Option {
	return func(m *Model) {
		m.currentDate = date
	}
}

// New creates a new Model
func New(dbPath string, cfg grid.Config, opts ...Option) *Model {
	m := &Model{
		dbPath:    dbPath,
		cfg:       cfg,
		selection: grid.NewMachine(cfg),
		focused:   true,
		now:       time.Now,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.current = m.now()
	if m.currentDate.IsZero() {
		m.currentDate = cfg.GridDate(m.current)
	}
	m.rebuild()
	return m
}

// NowMsg advances the current-time marker. Send it from a clock.Ticker.
type NowMsg struct {
	Time time.Time
}

// Messages
type entriesLoadedMsg struct {
	date    time.Time
	entries []models.Entry
}

type entryCreatedMsg struct {
	entry models.Entry
}

type errMsg struct {
	err error
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return m.loadEntries
}

// visibleRange returns the instants covered by the current view
func (m *Model) visibleRange() (time.Time, time.Time) {
	if m.viewState == WeeklyView {
		return m.cfg.WeekRange(m.currentDate)
	}
	return m.cfg.DayRange(m.currentDate)
}

// loadEntries loads entries for the visible range
func (m *Model) loadEntries() tea.Msg {
	database, err := db.New(m.dbPath)
	if err != nil {
		return errMsg{err}
	}
	defer database.Close()

	start, end := m.visibleRange()
	entries, err := database.GetEntriesByRange(start, end)
	if err != nil {
		return errMsg{err}
	}
	return entriesLoadedMsg{date: m.currentDate, entries: entries}
}

// createEntry stores a committed selection as an execution entry
func (m *Model) createEntry(iv grid.Interval) tea.Cmd {
	var origin time.Time
	if m.viewState == WeeklyView {
		origin = m.cfg.WeekOrigin(m.currentDate).AddDate(0, 0, iv.DayIndex)
	} else {
		origin = m.cfg.DayOrigin(m.currentDate)
	}
	start := m.cfg.AtGridMinutes(origin, iv.Start)
	end := m.cfg.AtGridMinutes(origin, iv.End)

	return func() tea.Msg {
		database, err := db.New(m.dbPath)
		if err != nil {
			return errMsg{err}
		}
		defer database.Close()

		e := models.NewEntry(models.KindExecution, "Logged", start, end)
		if _, err := database.InsertEntry(e); err != nil {
			return errMsg{err}
		}
		log.Info("logged execution", "start", start, "end", end)
		return entryCreatedMsg{entry: *e}
	}
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.FocusMsg:
		m.focused = true
		return m, nil

	case tea.BlurMsg:
		m.focused = false
		m.selection.Dispatch(grid.Leave{})
		m.hover = nil
		m.rebuild()
		return m, nil

	case NowMsg:
		m.current = msg.Time
		m.rebuild()
		return m, nil

	case entriesLoadedMsg:
		if !msg.date.Equal(m.currentDate) {
			// Stale load from before navigation.
			return m, nil
		}
		m.entries = msg.entries
		m.rebuild()
		return m, nil

	case entryCreatedMsg:
		m.status = "Logged " + m.cfg.FormatMinutes(m.cfg.ToGridMinutes(msg.entry.Start), msg.entry.Start) +
			" - " + m.cfg.FormatMinutes(m.cfg.ToGridMinutes(msg.entry.End), msg.entry.End)
		return m, m.loadEntries

	case errMsg:
		m.status = "Error: " + msg.err.Error()
		log.Error("tui", msg.err)
		return m, nil
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (*Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "?":
		m.showHelp = !m.showHelp
		return m, nil

	case "enter":
		iv, ok := m.selection.Commit()
		if !ok {
			return m, nil
		}
		m.rebuild()
		return m, m.createEntry(iv)

	case "esc":
		m.selection.Cancel()
		m.status = ""
		m.rebuild()
		return m, nil

	case "h", "left":
		return m, m.navigate(-1)

	case "l", "right":
		return m, m.navigate(1)

	case "t":
		m.currentDate = m.cfg.GridDate(m.now())
		return m, m.reset()

	case "w":
		if m.viewState == WeeklyView {
			m.viewState = DailyView
		} else {
			m.viewState = WeeklyView
		}
		return m, m.reset()
	}

	return m, nil
}

// navigate moves one day, or one week in the weekly view
func (m *Model) navigate(dir int) tea.Cmd {
	days := dir
	if m.viewState == WeeklyView {
		days *= m.cfg.DaysCount
	}
	m.currentDate = m.currentDate.AddDate(0, 0, days)
	return m.reset()
}

// reset drops per-view interaction state and reloads entries
func (m *Model) reset() tea.Cmd {
	m.selection.Cancel()
	m.hover = nil
	m.entries = nil
	m.rebuild()
	return m.loadEntries
}

// rebuild recomputes the layout from entries, selection and time
func (m *Model) rebuild() {
	opts := timetable.Options{Now: &m.current}
	if iv, ok := m.selection.Normalized(); ok {
		opts.Selection = &iv
	}
	if m.viewState == WeeklyView {
		m.weekly = timetable.BuildWeekly(m.cfg, m.entries, m.currentDate, opts)
		return
	}
	m.daily = timetable.BuildDaily(m.cfg, m.entries, m.currentDate, grid.UnitMinutes, opts)
}

// View implements tea.Model
func (m *Model) View() string {
	return m.renderView()
}

// Getters for testing
func (m *Model) CurrentDate() time.Time {
	return m.currentDate
}

func (m *Model) ViewState() ViewState {
	return m.viewState
}

func (m *Model) Entries() []models.Entry {
	return m.entries
}

func (m *Model) Selection() grid.Selection {
	return m.selection.State()
}

func (m *Model) Hover() *grid.Hover {
	return m.hover
}

func (m *Model) Daily() timetable.Daily {
	return m.daily
}

func (m *Model) Weekly() timetable.Weekly {
	return m.weekly
}

func (m *Model) Focused() bool {
	return m.focused
}

func (m *Model) Status() string {
	return m.status
}
