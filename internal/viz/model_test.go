package viz

import (
	"slices"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/sortviz/internal/config"
	"github.com/san-kum/sortviz/internal/player"
)

func newTestModel(t *testing.T) (Model, *player.ManualScheduler) {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.ArraySize = 10
	cfg.Seed = 3
	sched := player.NewManualScheduler()
	m, err := NewModel(cfg, player.WithScheduler(sched))
	if err != nil {
		t.Fatalf("new model: %v", err)
	}
	return m, sched
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func TestNewModelLoadsTrace(t *testing.T) {
	m, _ := newTestModel(t)

	if m.state.Status != player.Idle {
		t.Errorf("expected idle, got %s", m.state.Status)
	}
	if m.state.Algorithm != "bubble" || m.info.Name != "Bubble Sort" {
		t.Errorf("unexpected algorithm %s / %s", m.state.Algorithm, m.info.Name)
	}
	if len(m.state.Array) != 10 {
		t.Errorf("expected 10 values, got %d", len(m.state.Array))
	}
}

func TestNewModelRejectsInvalidConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Speed = 0
	if _, err := NewModel(cfg); err == nil {
		t.Error("expected error")
	}
}

func TestSpaceTogglesPlayback(t *testing.T) {
	m, sched := newTestModel(t)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeySpace})
	if m.state.Status != player.Running {
		t.Fatalf("expected running, got %s", m.state.Status)
	}
	sched.Advance()

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeySpace})
	if m.state.Status != player.Paused || m.state.Cursor != 1 {
		t.Fatalf("expected paused at 1, got %s at %d", m.state.Status, m.state.Cursor)
	}

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeySpace})
	if m.state.Status != player.Running || m.state.Cursor != 1 {
		t.Fatalf("expected running from 1, got %s at %d", m.state.Status, m.state.Cursor)
	}
}

func TestReplayAfterCompletion(t *testing.T) {
	m, sched := newTestModel(t)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeySpace})
	sched.RunUntilIdle(100000)
	m, _ = press(t, m, TickMsg{Session: m.session, Time: time.Now()})

	if m.state.Status != player.Completed {
		t.Fatalf("expected completed, got %s", m.state.Status)
	}
	if !slices.IsSorted(m.state.Array) {
		t.Errorf("expected sorted array, got %v", m.state.Array)
	}
	if !strings.Contains(m.View(), "Sorting Complete!") {
		t.Error("expected completion message in view")
	}

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeySpace})
	if m.state.Status != player.Running || m.state.Cursor != 0 {
		t.Errorf("expected replay from 0, got %s at %d", m.state.Status, m.state.Cursor)
	}
}

func TestNewArrayRefusedWhileRunning(t *testing.T) {
	m, _ := newTestModel(t)
	before := slices.Clone(m.values)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeySpace})
	m, _ = press(t, m, runes("n"))
	if !slices.Equal(m.values, before) {
		t.Error("array changed while running")
	}
	if m.notice == "" {
		t.Error("expected a notice")
	}

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeySpace})
	m, _ = press(t, m, runes("n"))
	if slices.Equal(m.values, before) {
		t.Error("expected a new array while paused")
	}
	if m.state.Status != player.Idle || m.state.Cursor != 0 {
		t.Errorf("expected fresh idle playback, got %s at %d", m.state.Status, m.state.Cursor)
	}
}

func TestSpeedKeys(t *testing.T) {
	m, _ := newTestModel(t)

	m, _ = press(t, m, runes("+"))
	if m.state.Speed != 55 {
		t.Errorf("expected 55, got %d", m.state.Speed)
	}
	for i := 0; i < 30; i++ {
		m, _ = press(t, m, runes("+"))
	}
	if m.state.Speed != player.MaxSpeed {
		t.Errorf("expected speed capped at %d, got %d", player.MaxSpeed, m.state.Speed)
	}
	for i := 0; i < 30; i++ {
		m, _ = press(t, m, runes("-"))
	}
	if m.state.Speed != player.MinSpeed {
		t.Errorf("expected speed floored at %d, got %d", player.MinSpeed, m.state.Speed)
	}
}

func TestSwitchAlgorithmNotice(t *testing.T) {
	m, _ := newTestModel(t)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	m.clock = func() time.Time { return now }
	values := slices.Clone(m.values)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if m.state.Algorithm != "cocktail" {
		t.Fatalf("expected cocktail, got %s", m.state.Algorithm)
	}
	if m.notice != "Switched to Cocktail Shaker Sort" {
		t.Errorf("unexpected notice %q", m.notice)
	}
	if !slices.Equal(m.state.Array, values) {
		t.Error("switching algorithm should keep the input")
	}

	m, _ = press(t, m, TickMsg{Session: m.session, Time: now.Add(time.Second)})
	if m.notice == "" {
		t.Error("notice cleared too early")
	}
	m, _ = press(t, m, TickMsg{Session: m.session, Time: now.Add(2 * time.Second)})
	if m.notice != "" {
		t.Error("expected notice to expire after 2s")
	}

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	if m.state.Algorithm != "shell" {
		t.Errorf("expected wrap-around to shell, got %s", m.state.Algorithm)
	}
}

func TestSwitchAlgorithmStopsPlayback(t *testing.T) {
	m, sched := newTestModel(t)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeySpace})
	pending := sched.Next()
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})

	if m.state.Status != player.Idle {
		t.Errorf("expected idle after switching, got %s", m.state.Status)
	}
	if !pending.Stopped() {
		t.Error("expected pending advance to be cancelled")
	}
}

func TestStepAndReset(t *testing.T) {
	m, _ := newTestModel(t)

	m, _ = press(t, m, runes("s"))
	m, _ = press(t, m, runes("s"))
	if m.state.Cursor != 2 || m.state.Status != player.Paused {
		t.Errorf("expected paused at 2, got %s at %d", m.state.Status, m.state.Cursor)
	}

	m, _ = press(t, m, runes("r"))
	if m.state.Cursor != 0 || m.state.Status != player.Idle {
		t.Errorf("expected idle at 0, got %s at %d", m.state.Status, m.state.Cursor)
	}
}

func TestStaleTickIgnored(t *testing.T) {
	m, _ := newTestModel(t)
	_, cmd := press(t, m, TickMsg{Session: m.session - 1, Time: time.Now()})
	if cmd != nil {
		t.Error("expected stale tick to end its chain")
	}

	_, cmd = press(t, m, TickMsg{Session: m.session, Time: time.Now()})
	if cmd == nil {
		t.Error("expected current tick to schedule the next frame")
	}
}

func TestToggles(t *testing.T) {
	m, _ := newTestModel(t)
	theme := m.theme.Name

	m, _ = press(t, m, runes("i"))
	if !m.showInfo || !strings.Contains(m.View(), "Stable") {
		t.Error("expected info panel")
	}
	m, _ = press(t, m, runes("?"))
	if !strings.Contains(m.View(), "KEYBOARD SHORTCUTS") {
		t.Error("expected help overlay")
	}
	if strings.Contains(m.View(), "Back to menu") {
		t.Error("standalone player should not advertise esc")
	}
	m, _ = press(t, m, runes("t"))
	if m.theme.Name == theme {
		t.Error("expected theme to change")
	}
	m, _ = press(t, m, runes("c"))
	lit := strings.ContainsFunc(m.View(), func(r rune) bool { return r > brailleBlank && r <= 0x28FF })
	if !m.compact || !lit {
		t.Error("expected compact braille bars")
	}
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeySpace})

	m, cmd := press(t, m, runes("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
	if m.Engine().State().Status != player.Idle {
		t.Error("expected engine stopped on quit")
	}
}

func TestAppMenu(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.ArraySize = 8
	app := NewApp(cfg, player.WithScheduler(player.NewManualScheduler()))

	if !strings.Contains(app.View(), "Bubble Sort") {
		t.Error("expected algorithm list")
	}

	next, _ := app.Update(tea.KeyMsg{Type: tea.KeyDown})
	next, cmd := next.(App).Update(tea.KeyMsg{Type: tea.KeyEnter})
	a := next.(App)
	if a.state != statePlay || cmd == nil {
		t.Fatalf("expected playback screen with a tick, got state %d", a.state)
	}
	if a.live.state.Algorithm != "cocktail" {
		t.Errorf("expected cocktail, got %s", a.live.state.Algorithm)
	}

	next, _ = a.Update(runes("?"))
	if !strings.Contains(next.View(), "Esc      - Back to menu") {
		t.Error("expected esc hint inside the menu app")
	}

	next, _ = a.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if next.(App).state != stateMenu {
		t.Error("expected esc to return to the menu")
	}
}
