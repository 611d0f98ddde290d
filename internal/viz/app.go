package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/sortviz/internal/algorithms"
	"github.com/san-kum/sortviz/internal/config"
	"github.com/san-kum/sortviz/internal/player"
)

const (
	stateMenu = iota
	statePlay
)

// App is the interactive entry point: an algorithm menu leading to the
// playback screen.
type App struct {
	state  int
	cursor int
	names  []string
	cfg    config.Config
	opts   []player.Option
	live   Model
	width  int
	err    error
}

func NewApp(cfg *config.Config, opts ...player.Option) *App {
	names := algorithms.Names()
	cursor := 0
	for i, n := range names {
		if n == cfg.Algorithm {
			cursor = i
		}
	}
	return &App{
		state:  stateMenu,
		cursor: cursor,
		names:  names,
		cfg:    *cfg,
		opts:   opts,
		width:  120,
	}
}

func (a App) Init() tea.Cmd { return nil }

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		a.width = size.Width
	}
	if a.state == statePlay {
		if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
			a.live.Engine().Reset()
			a.cfg = a.live.cfg
			a.state = stateMenu
			return a, nil
		}
		next, cmd := a.live.Update(msg)
		a.live = next.(Model)
		return a, cmd
	}
	if key, ok := msg.(tea.KeyMsg); ok {
		return a.menuKey(key)
	}
	return a, nil
}

func (a App) menuKey(msg tea.KeyMsg) (App, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
	case "down", "j":
		if a.cursor < len(a.names)-1 {
			a.cursor++
		}
	case "enter", " ":
		cfg := a.cfg
		cfg.Algorithm = a.names[a.cursor]
		live, err := NewModel(&cfg, a.opts...)
		if err != nil {
			a.err = err
			return a, nil
		}
		live.width = a.width
		live.inMenu = true
		a.live, a.state, a.err = live, statePlay, nil
		return a, live.Init()
	}
	return a, nil
}

func (a App) View() string {
	if a.state == statePlay {
		return a.live.View()
	}

	var b strings.Builder
	h := lipgloss.NewStyle().Foreground(lipgloss.Color("#00cccc")).Bold(true)
	b.WriteString("\n\n    " + h.Render("SORTVIZ") + "\n    " + hintStyle.Render("sorting algorithm visualizer") + "\n    " + hintStyle.Render("─────────────────────────────") + "\n\n")
	for i, name := range a.names {
		info, _ := algorithms.Lookup(name)
		label := fmt.Sprintf("%-22s", info.Name)
		complexity := info.TimeComplexity.Average
		if i == a.cursor {
			marker := lipgloss.NewStyle().Foreground(lipgloss.Color(info.Color)).Bold(true).Render("▸")
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", marker, lipgloss.NewStyle().Bold(true).Render(label), lipgloss.NewStyle().Foreground(lipgloss.Color("#ff88ff")).Render(complexity)))
		} else {
			b.WriteString(fmt.Sprintf("      %s  %s\n", hintStyle.Render(label), hintStyle.Render(complexity)))
		}
	}
	b.WriteString(fmt.Sprintf("\n    %s\n", hintStyle.Render(fmt.Sprintf("size %d · speed %d%% · shape %s", a.cfg.ArraySize, a.cfg.Speed, a.cfg.Shape))))
	if a.err != nil {
		b.WriteString("    " + lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444")).Render(a.err.Error()) + "\n")
	}
	b.WriteString("\n    " + KeyHints("j/k", "navigate", "enter", "select", "q", "quit") + "\n")
	return b.String()
}

// RunInteractive starts the menu-driven application on the alternate
// screen.
func RunInteractive(cfg *config.Config, opts ...player.Option) error {
	_, err := tea.NewProgram(NewApp(cfg, opts...), tea.WithAltScreen()).Run()
	return err
}

// RunPlayer opens the playback screen directly for cfg.Algorithm.
func RunPlayer(cfg *config.Config, opts ...player.Option) error {
	m, err := NewModel(cfg, opts...)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
