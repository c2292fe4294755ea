package ui

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/avgang/internal/prefs"
	"github.com/five82/avgang/internal/state"
	"github.com/five82/avgang/internal/vasttrafik"
)

// scriptedRefresher plays back one outcome per call, the way app.Refresher
// records results in the store.
type scriptedRefresher struct {
	store *state.Store
	steps []error
	list  vasttrafik.DepartureList
	calls int
}

func (r *scriptedRefresher) Refresh(context.Context) error {
	var err error
	if r.calls < len(r.steps) {
		err = r.steps[r.calls]
	}
	r.calls++
	if err != nil {
		r.store.Fail(err)
		return err
	}
	r.store.Update(r.list)
	return nil
}

func newTestModel(t *testing.T, steps ...error) (Model, *scriptedRefresher) {
	t.Helper()
	store := &state.Store{}
	r := &scriptedRefresher{
		store: store,
		steps: steps,
		list: vasttrafik.DepartureList{
			HasResults: true,
			Results: []vasttrafik.Departure{
				departure("16", "Marklandsgatan", "A", "2024-05-01T14:05:00"),
			},
		},
	}
	m := New(Options{
		Refresher: r,
		Store:     store,
		StopName:  "Doktor Fries Torg",
		Interval:  time.Minute,
		Location:  time.UTC,
		PrefsPath: filepath.Join(t.TempDir(), "prefs.toml"),
	})
	return m, r
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return out, cmd
}

// runCycle executes the pending refresh command and feeds its result back.
func runCycle(t *testing.T, m Model, cmd tea.Cmd) (Model, tea.Cmd) {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a refresh command")
	}
	msg := cmd()
	if _, ok := msg.(refreshDoneMsg); !ok {
		t.Fatalf("command produced %T, want refreshDoneMsg", msg)
	}
	return update(t, m, msg)
}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_InitRefreshesImmediately(t *testing.T) {
	m, r := newTestModel(t)

	m, next := runCycle(t, m, m.Init())
	if r.calls != 1 {
		t.Fatalf("refresh calls = %d, want 1", r.calls)
	}
	if next == nil {
		t.Fatal("no tick scheduled after refresh")
	}
	if len(m.rows) != 1 || m.rows[0].Line != "linje 16" || m.rows[0].Time != "14:05" {
		t.Fatalf("rows = %+v", m.rows)
	}
}

func TestModel_TickStartsRefresh(t *testing.T) {
	m, r := newTestModel(t)

	m, cmd := update(t, m, tickMsg(time.Now()))
	if !m.refreshing {
		t.Fatal("tick did not mark a refresh in flight")
	}
	m, _ = runCycle(t, m, cmd)
	if r.calls != 1 || m.refreshing {
		t.Fatalf("calls = %d refreshing = %v", r.calls, m.refreshing)
	}
}

func TestModel_FailedRefreshKeepsRows(t *testing.T) {
	m, r := newTestModel(t, nil, errors.New("token fetch failed"))

	m, _ = runCycle(t, m, m.Init())
	before := m.rows
	gen := m.generation

	m, next := runCycle(t, m, refreshCmd(m.ctx, r))
	if next == nil {
		t.Fatal("failed refresh must still schedule the next tick")
	}
	if m.generation != gen || len(m.rows) != len(before) || m.rows[0] != before[0] {
		t.Fatalf("rows changed after failure: %+v", m.rows)
	}
}

func TestModel_FailureBeforeFirstSuccessLeavesBoardEmpty(t *testing.T) {
	m, _ := newTestModel(t, errors.New("boom"))

	m, _ = runCycle(t, m, m.Init())
	if len(m.rows) != 0 {
		t.Fatalf("rows = %+v, want none", m.rows)
	}
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	if !strings.Contains(m.View(), "update failed") {
		t.Fatal("footer does not report the failed update")
	}
}

func TestModel_FooterDuringFirstRefresh(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	if !strings.Contains(m.View(), "updating…") {
		t.Fatalf("footer before first result:\n%s", m.View())
	}

	m, _ = runCycle(t, m, m.Init())
	if view := m.View(); strings.Contains(view, "updating…") || !strings.Contains(view, "updated ") {
		t.Fatalf("footer after first result:\n%s", view)
	}
}

func TestModel_FooterReportsFailureKeepingData(t *testing.T) {
	m, r := newTestModel(t, nil, errors.New("departures fetch failed"))
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})

	m, _ = runCycle(t, m, m.Init())
	m, _ = runCycle(t, m, refreshCmd(m.ctx, r))

	view := m.View()
	if !strings.Contains(view, "update failed, data from") || !strings.Contains(view, "linje 16") {
		t.Fatalf("view after failed refresh:\n%s", view)
	}
}

func TestModel_ViewFitsSmallWindow(t *testing.T) {
	m, r := newTestModel(t)
	results := make([]vasttrafik.Departure, 10)
	for i := range results {
		results[i] = departure("16", "Marklandsgatan", "A", "2024-05-01T14:05:00")
	}
	r.list = vasttrafik.DepartureList{HasResults: true, Results: results}

	m, _ = runCycle(t, m, m.Init())
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 44, Height: 11})

	view := m.View()
	lines := strings.Split(view, "\n")
	if len(lines) > 11 {
		t.Fatalf("view has %d lines, want at most 11:\n%s", len(lines), view)
	}
	for i, line := range lines {
		if w := lipgloss.Width(line); w > 44 {
			t.Fatalf("line %d is %d cells wide, want at most 44: %q", i, w, line)
		}
	}
	if !strings.Contains(lines[0], "Avgångar") {
		t.Fatalf("header missing: %q", lines[0])
	}
	if last := lines[len(lines)-1]; !strings.Contains(last, "updated") {
		t.Fatalf("footer missing: %q", last)
	}
	if !strings.Contains(view, "14:05") {
		t.Fatal("departure times cut off")
	}
}

func TestModel_ViewShowsBoard(t *testing.T) {
	m, _ := newTestModel(t)
	if got := m.View(); got != "Loading..." {
		t.Fatalf("View before size = %q", got)
	}

	m, _ = runCycle(t, m, m.Init())
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})

	view := m.View()
	for _, want := range []string{"Avgångar Doktor Fries Torg", "linje 16", "till Marklands", "Läge A", "14:05", "updated"} {
		if !strings.Contains(view, want) {
			t.Fatalf("View missing %q:\n%s", want, view)
		}
	}
	if strings.Contains(view, "MOVE") {
		t.Fatal("MOVE badge shown outside drag mode")
	}
}

func TestModel_MoveKeyAndDrag(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})

	m, _ = update(t, m, runeKey("M"))
	if !m.overlay.movable {
		t.Fatal("M did not enable drag mode")
	}
	if !strings.Contains(m.View(), "MOVE") {
		t.Fatal("MOVE badge missing in drag mode")
	}

	m, _ = update(t, m, press(3, 3))
	m, _ = update(t, m, motion(13, 7))
	m, _ = update(t, m, release(13, 7))
	if m.overlay.x != 10 || m.overlay.y != 4 {
		t.Fatalf("position = (%d,%d), want (10,4)", m.overlay.x, m.overlay.y)
	}

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 50, Height: 14})
	if m.overlay.x != 4 || m.overlay.y != 2 {
		t.Fatalf("position after shrink = (%d,%d), want (4,2)", m.overlay.x, m.overlay.y)
	}

	m, _ = update(t, m, runeKey("m"))
	if m.overlay.movable {
		t.Fatal("m did not disable drag mode")
	}
}

func TestModel_CycleThemePersists(t *testing.T) {
	m, _ := newTestModel(t)

	m, _ = update(t, m, runeKey("T"))
	if m.theme.Name != "Kanagawa" {
		t.Fatalf("theme = %q, want Kanagawa", m.theme.Name)
	}
	if got := prefs.Load(m.prefsPath).Theme; got != "Kanagawa" {
		t.Fatalf("saved theme = %q, want Kanagawa", got)
	}
}

func TestModel_HelpAndQuit(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})

	m, _ = update(t, m, runeKey("?"))
	if !m.showHelp || !strings.Contains(m.View(), "Keyboard Shortcuts") {
		t.Fatal("help not shown")
	}
	m, cmd := update(t, m, runeKey("q"))
	if m.showHelp || cmd != nil {
		t.Fatal("first key should only close help")
	}

	_, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("ctrl+c returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("ctrl+c did not quit")
	}
}
