package ui

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/avgang/internal/prefs"
	"github.com/five82/avgang/internal/state"
)

// Refresher runs one token + departures cycle and records the outcome in the
// store. *app.Refresher implements it.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// Options configures the UI.
type Options struct {
	Context   context.Context
	Refresher Refresher
	Store     *state.Store
	StopName  string
	Interval  time.Duration
	Location  *time.Location
	ThemeName string
	PrefsPath string
}

const defaultInterval = 600 * time.Second

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	refresher Refresher
	store     *state.Store
	stopName  string
	interval  time.Duration
	loc       *time.Location
	prefsPath string

	// UI state
	theme    Theme
	styles   Styles
	keys     keyMap
	help     help.Model
	width    int
	height   int
	showHelp bool
	overlay  overlay

	// Data state
	rows        []Row
	generation  uint64
	lastSuccess time.Time
	lastErr     error
	refreshing  bool
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	interval := opts.Interval
	if interval <= 0 {
		interval = defaultInterval
	}

	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	store := opts.Store
	if store == nil {
		store = &state.Store{}
	}

	theme := GetTheme(opts.ThemeName)
	return Model{
		ctx:       ctx,
		refresher: opts.Refresher,
		store:     store,
		stopName:  strings.TrimSpace(opts.StopName),
		interval:  interval,
		loc:       loc,
		prefsPath: prefsPath,
		theme:     theme,
		styles:    theme.Styles(),
		keys:      DefaultKeyMap(),
		help:      newHelp(),

		// Init starts the first refresh straight away.
		refreshing: true,
	}
}

func newHelp() help.Model {
	h := help.New()
	h.ShowAll = true
	return h
}

// Init implements tea.Model. The first refresh runs immediately.
func (m Model) Init() tea.Cmd {
	return refreshCmd(m.ctx, m.refresher)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.overlay.handleMouse(msg, m.width, m.height)
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.overlay.fit(m.width, m.height)
		return m, nil

	case tickMsg:
		m.refreshing = true
		return m, refreshCmd(m.ctx, m.refresher)

	case refreshDoneMsg:
		m.refreshing = false
		m.lastErr = msg.err
		m.applySnapshot()
		// The next cycle is scheduled only once this one has finished.
		return m, tickCmd(m.interval)
	}

	return m, nil
}

// applySnapshot redraws the rows when the store holds a newer successful
// fetch. A failed cycle leaves the rows as they are.
func (m *Model) applySnapshot() {
	snap := m.store.Snapshot()
	if !snap.HasData || snap.Generation == m.generation {
		return
	}
	m.rows = BuildRows(snap.Departures, m.loc)
	m.generation = snap.Generation
	m.lastSuccess = snap.LastSuccess
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.ToggleMove):
		m.overlay.toggleMovable()

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.styles = m.theme.Styles()
		m.savePrefs()

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
	}

	return m, nil
}

func (m Model) savePrefs() {
	p := prefs.Prefs{Theme: m.theme.Name}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		log.Printf("save prefs failed: %v", err)
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return lipgloss.NewStyle().
		MarginLeft(m.overlay.x).
		MarginTop(m.overlay.y).
		Render(m.renderPanel())
}

// renderPanel draws the board at the overlay's current size: header, rows,
// footer. Rows that do not fit are cut from the bottom.
func (m Model) renderPanel() string {
	s := m.styles
	w, h := m.overlay.size()
	inner := max(w-2, 1)

	title := "Avgångar"
	if m.stopName != "" {
		title += " " + m.stopName
	}
	header := s.Header.Width(w).Render(truncate(title, inner))

	clip := lipgloss.NewStyle().MaxWidth(inner)
	lines := make([]string, 0, len(m.rows))
	for _, row := range m.rows {
		lines = append(lines, clip.Render(m.renderRow(row)))
	}
	bodyHeight := max(h-2, 0)
	body := s.Body.Width(w).Height(bodyHeight).MaxHeight(bodyHeight).Render(strings.Join(lines, "\n"))

	panel := s.Panel.Width(w).Height(h).MaxHeight(h).MaxWidth(w)
	return panel.Render(lipgloss.JoinVertical(lipgloss.Left, header, body, m.renderFooter(w)))
}

func (m Model) renderRow(row Row) string {
	s := m.styles
	if row.IsNotice() {
		return s.Muted.Render(row.Notice)
	}
	f := row.Fields()
	gap := s.Gap.Render(strings.Repeat(" ", columnGap))
	return strings.Join([]string{
		s.Line.Render(f[0]),
		s.Text.Render(f[1]),
		s.Muted.Render(f[2]),
		s.Time.Render(f[3]),
	}, gap)
}

func (m Model) renderFooter(width int) string {
	s := m.styles
	room := max(width-2, 1)

	var status string
	switch {
	case m.refreshing:
		status = "updating…"
	case m.lastErr != nil && m.lastSuccess.IsZero():
		status = "update failed"
	case m.lastErr != nil:
		status = "update failed, data from " + m.lastSuccess.In(m.loc).Format("15:04")
	case m.lastSuccess.IsZero():
		status = "waiting for data"
	default:
		status = "updated " + m.lastSuccess.In(m.loc).Format("15:04")
	}

	footer := s.Footer.Width(width)
	if m.overlay.movable {
		badge := s.MoveBadge.Render("MOVE")
		left := room - lipgloss.Width(badge) - 1
		if left > 0 {
			return footer.Render(padRight(truncate(status, left), left) + " " + badge)
		}
	}
	return footer.Render(truncate(status, room))
}

// renderHelp renders the key binding overlay.
func (m Model) renderHelp() string {
	s := m.styles
	title := s.Text.Bold(true).Render("Keyboard Shortcuts")
	content := lipgloss.JoinVertical(lipgloss.Left, title, "", m.help.View(m.keys))

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		s.Modal.Render(content),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}

// Messages

type tickMsg time.Time

type refreshDoneMsg struct {
	err error
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func refreshCmd(ctx context.Context, r Refresher) tea.Cmd {
	return func() tea.Msg {
		if r == nil {
			return refreshDoneMsg{}
		}
		return refreshDoneMsg{err: r.Refresh(ctx)}
	}
}

// Run starts the Bubble Tea program and blocks until the user quits or the
// context is cancelled.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(m.ctx),
	)
	_, err := p.Run()
	return err
}
