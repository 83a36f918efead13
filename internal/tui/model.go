package tui

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/Veraticus/transit-journal/internal/calendar"
	"github.com/Veraticus/transit-journal/internal/cli"
	"github.com/Veraticus/transit-journal/internal/common"
	"github.com/Veraticus/transit-journal/internal/dates"
	"github.com/Veraticus/transit-journal/internal/engine"
	"github.com/Veraticus/transit-journal/internal/model"
	"github.com/Veraticus/transit-journal/internal/tui/themes"
	"github.com/Veraticus/transit-journal/internal/viewstate"
)

// State represents the current state of the TUI.
type State int

const (
	StateCalendar State = iota
	StateForm
)

// Model holds the main TUI state. Loaded data is replaced wholesale when a
// fetch result is accepted, never merged.
type Model struct {
	ctx       context.Context
	cursor    time.Time
	lastError error
	theme     themes.Theme
	engine    *engine.Engine
	store     *viewstate.Store
	snap      *engine.Snapshot
	detail    *engine.DayDetail
	form      *huh.Form
	draft     *JournalDraft
	now       func() time.Time
	status    string
	targets   []JournalTarget
	config    Config
	keymap    KeyMap
	help      help.Model
	spinner   spinner.Model
	viewport  viewport.Model
	// paneKey is what the detail pane was last rendered from.
	paneKey    paneKey
	width      int
	height     int
	state      State
	loadingWin bool
	loadingDay bool
	quitting   bool
	ready      bool
}

type paneKey struct {
	detail *engine.DayDetail
	filter string
	planet model.Planet
	gen    uint64
}

// newModel creates a new model with the given configuration.
func newModel(ctx context.Context, cfg Config) Model {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	start := cfg.Start
	if start.IsZero() {
		start = now()
	}
	start = dates.Day(start)

	keymap := DefaultKeyMap()
	vp := viewport.New(cfg.Width, cfg.Height/2)
	vp.KeyMap = viewport.KeyMap{HalfPageUp: keymap.ScrollUp, HalfPageDown: keymap.ScrollDown}

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = sp.Style.Foreground(cfg.Theme.Primary)

	h := help.New()
	h.ShowAll = cfg.ShowHelp

	m := Model{
		ctx:        ctx,
		config:     cfg,
		theme:      cfg.Theme,
		engine:     cfg.Engine,
		store:      viewstate.New(start, cfg.Granularity),
		now:        now,
		cursor:     start,
		keymap:     keymap,
		help:       h,
		spinner:    sp,
		viewport:   vp,
		width:      cfg.Width,
		height:     cfg.Height,
		state:      StateCalendar,
		loadingWin: true,
		loadingDay: true,
	}
	m.handleResize()
	return m
}

// Init starts the first window and day fetches.
func (m Model) Init() tea.Cmd {
	winTok := m.store.Current(viewstate.ScopeWindow)
	dayTok := m.store.SelectDay(m.cursor)
	return tea.Batch(
		m.spinner.Tick,
		m.loadWindow(winTok, m.store.Window()),
		m.loadDay(dayTok, m.cursor, nil),
	)
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.handleResize()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case windowLoadedMsg:
		return m.handleWindowLoaded(msg)

	case dayLoadedMsg:
		return m.handleDayLoaded(msg)

	case entrySavedMsg:
		return m.handleEntrySaved(msg)
	}

	if m.state == StateForm {
		return m.updateForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit), key.Matches(msg, m.keymap.ForceQuit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keymap.ToggleHelp):
		m.help.ShowAll = !m.help.ShowAll
		m.handleResize()
		return m, nil

	case key.Matches(msg, m.keymap.Left):
		cmd := m.moveCursor(dates.AddDays(m.cursor, -1))
		return m, cmd
	case key.Matches(msg, m.keymap.Right):
		cmd := m.moveCursor(dates.AddDays(m.cursor, 1))
		return m, cmd
	case key.Matches(msg, m.keymap.Up):
		cmd := m.moveCursor(dates.AddDays(m.cursor, -7))
		return m, cmd
	case key.Matches(msg, m.keymap.Down):
		cmd := m.moveCursor(dates.AddDays(m.cursor, 7))
		return m, cmd
	case key.Matches(msg, m.keymap.Today):
		cmd := m.moveCursor(m.now())
		return m, cmd
	case key.Matches(msg, m.keymap.PrevWindow):
		cmd := m.moveCursor(m.pageCursor(-1))
		return m, cmd
	case key.Matches(msg, m.keymap.NextWindow):
		cmd := m.moveCursor(m.pageCursor(1))
		return m, cmd

	case key.Matches(msg, m.keymap.ToggleGranularity):
		g := calendar.Month
		if m.store.Window().Granularity() == calendar.Month {
			g = calendar.Week
		}
		tok := m.store.SetGranularity(g)
		m.loadingWin = true
		return m, m.loadWindow(tok, m.store.Window())

	case key.Matches(msg, m.keymap.Refresh):
		tok := m.store.ShowWindow(m.store.Window())
		m.loadingWin = true
		m.status = ""
		m.lastError = nil
		dayCmd := m.selectDay(m.cursor)
		return m, tea.Batch(m.loadWindow(tok, m.store.Window()), dayCmd)

	case key.Matches(msg, m.keymap.CycleAspect):
		m.cycleAspectFilter()
		m.refreshPane()
		return m, nil

	case key.Matches(msg, m.keymap.CyclePlanet):
		m.cyclePlanetFilter()
		m.refreshPane()
		return m, nil

	case key.Matches(msg, m.keymap.AddEntry):
		return m.openForm()
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// moveCursor selects day, switching windows when day is outside the visible one.
func (m *Model) moveCursor(day time.Time) tea.Cmd {
	day = dates.Day(day)
	m.cursor = day

	var cmds []tea.Cmd
	if !m.store.Window().Contains(day) {
		tok := m.store.JumpTo(day)
		m.loadingWin = true
		cmds = append(cmds, m.loadWindow(tok, m.store.Window()))
	}
	cmds = append(cmds, m.selectDay(day))
	return tea.Batch(cmds...)
}

// pageCursor is the cursor position one window forward or back.
func (m Model) pageCursor(dir int) time.Time {
	w := m.store.Window()
	if w.Granularity() == calendar.Month {
		if dir > 0 {
			return w.Next().First()
		}
		return w.Prev().First()
	}
	return dates.AddDays(m.cursor, 7*dir)
}

func (m *Model) selectDay(day time.Time) tea.Cmd {
	tok := m.store.SelectDay(day)
	m.loadingDay = true

	var fallback []model.Transit
	if m.snap != nil && m.snap.Window.Contains(day) {
		fallback = m.snap.Transits
	}
	return m.loadDay(tok, day, fallback)
}

func (m Model) handleWindowLoaded(msg windowLoadedMsg) (tea.Model, tea.Cmd) {
	if err := m.store.Accept(msg.token); err != nil {
		slog.Debug("Discarding window result", "error", err)
		return m, nil
	}

	m.loadingWin = false
	m.ready = true
	if msg.err != nil {
		m.showError(msg.err, engine.MsgTransitsFailed)
		return m, nil
	}

	m.snap = msg.snap
	m.lastError = nil
	if len(msg.snap.FailedDays) > 0 {
		m.status = engine.MsgEntriesFailed
	}
	m.refreshPane()
	return m, nil
}

func (m Model) handleDayLoaded(msg dayLoadedMsg) (tea.Model, tea.Cmd) {
	if err := m.store.Accept(msg.token); err != nil {
		slog.Debug("Discarding day result", "error", err)
		return m, nil
	}

	m.loadingDay = false
	if msg.err != nil {
		m.detail = nil
		m.showError(msg.err, engine.MsgTransitsFailed)
		m.refreshPane()
		return m, nil
	}

	m.detail = msg.detail
	m.refreshPane()
	return m, nil
}

func (m Model) handleEntrySaved(msg entrySavedMsg) (tea.Model, tea.Cmd) {
	if msg.entry == nil {
		m.showError(msg.err, engine.MsgSaveFailed)
		return m, nil
	}

	m.status = "Saved journal entry"
	if msg.err != nil {
		m.showError(msg.err, engine.MsgEntriesFailed)
	}
	if msg.snap != nil && m.store.Accept(msg.token) == nil {
		m.snap = msg.snap
	}
	cmd := m.selectDay(m.cursor)
	return m, cmd
}

func (m *Model) cycleAspectFilter() {
	if m.detail == nil {
		return
	}
	options := []string{calendar.AllAspects}
	for _, a := range calendar.AspectTypes(m.detail.Transits) {
		options = append(options, string(a))
	}

	next := options[(slices.Index(options, m.store.AspectFilter())+1)%len(options)]
	if err := m.store.SetAspectFilter(next); err != nil {
		m.showError(err, "Invalid aspect filter")
	}
}

// cyclePlanetFilter steps through all bodies in display order, then back to all.
func (m *Model) cyclePlanetFilter() {
	options := append([]model.Planet{""}, model.Planets...)
	next := options[(slices.Index(options, m.store.PlanetFilter())+1)%len(options)]
	if err := m.store.SetPlanetFilter(string(next)); err != nil {
		m.showError(err, "Invalid planet filter")
	}
}

func (m Model) openForm() (tea.Model, tea.Cmd) {
	targets := JournalTargets(m.detail)
	if len(targets) == 0 {
		m.status = "Nothing to journal about on this day yet"
		return m, nil
	}

	m.targets = targets
	m.draft = &JournalDraft{}
	m.form = NewJournalForm(m.draft, targets).WithWidth(m.width - 4)
	m.state = StateForm
	return m, m.form.Init()
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.closeForm()
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		req, err := m.draft.Request(m.targets)
		m.closeForm()
		if err != nil {
			m.showError(err, engine.MsgSaveFailed)
			return m, nil
		}
		m.status = "Saving..."
		return m, m.saveEntry(m.store.Current(viewstate.ScopeWindow), m.snap, m.cursor, req)
	case huh.StateAborted:
		m.closeForm()
		return m, nil
	}
	return m, cmd
}

func (m *Model) closeForm() {
	m.state = StateCalendar
	m.form = nil
	m.draft = nil
	m.targets = nil
}

// refreshPane re-renders the detail pane when its inputs changed.
func (m *Model) refreshPane() {
	pk := paneKey{detail: m.detail, filter: m.store.AspectFilter(), planet: m.store.PlanetFilter()}
	if m.snap != nil {
		pk.gen = m.snap.Generation
	}
	if pk == m.paneKey {
		return
	}
	m.paneKey = pk

	if m.detail == nil {
		m.viewport.SetContent("")
		return
	}
	m.viewport.SetContent(cli.RenderDay(m.detail.ForPlanet(pk.planet), pk.filter, m.now()))
	m.viewport.GotoTop()
}

func (m *Model) showError(err error, fallback string) {
	if err == nil {
		return
	}
	if errors.Is(err, context.Canceled) {
		return
	}
	m.lastError = err
	m.status = common.UserMessage(err, fallback)
	slog.Warn(fallback, "error", err)
}

// handleResize adjusts component sizes when the terminal resizes.
func (m *Model) handleResize() {
	m.help.Width = m.width
	m.viewport.Width = max(m.width-2, 10)
	m.viewport.Height = max(m.height-m.gridHeight()-6, 3)
}
