package viz

import (
	"fmt"
	"math/rand"
	"slices"
	"strings"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/sortviz/internal/algorithms"
	"github.com/san-kum/sortviz/internal/config"
	"github.com/san-kum/sortviz/internal/metrics"
	"github.com/san-kum/sortviz/internal/player"
	"github.com/san-kum/sortviz/internal/trace"
)

const (
	frameInterval = time.Second / 30
	noticeFor     = 2 * time.Second
	speedStep     = 5
	barRows       = 20
	sidePanel     = 40
)

var sessions atomic.Int64

// TickMsg drives the frame loop. Ticks from an earlier session are
// dropped so that leaving and re-entering the player never doubles the
// frame rate.
type TickMsg struct {
	Session int64
	Time    time.Time
}

// Model is the playback screen. It owns an engine and reads its state
// once per frame; all changes go through the engine's transport calls.
type Model struct {
	engine  *player.Engine
	cfg     config.Config
	session int64
	clock   func() time.Time

	names  []string
	algo   int
	info   algorithms.Info
	values []int
	tr     trace.Trace
	state  player.State
	rng    *rand.Rand
	theme  Theme

	showInfo bool
	showHelp bool
	compact  bool
	// inMenu is set when an App hosts the model and handles esc.
	inMenu bool

	notice      string
	noticeUntil time.Time
	width       int
	err         error
}

// NewModel builds a player for cfg. opts are appended to the engine
// options derived from cfg.
func NewModel(cfg *config.Config, opts ...player.Option) (Model, error) {
	if err := cfg.Validate(); err != nil {
		return Model{}, err
	}

	m := Model{
		engine:  player.New(append(cfg.PlayerOptions(), opts...)...),
		cfg:     *cfg,
		session: sessions.Add(1),
		clock:   time.Now,
		names:   algorithms.Names(),
		rng:     rand.New(rand.NewSource(cfg.Seed)),
		theme:   GetTheme(cfg.Theme),
		width:   120,
	}
	m.algo = slices.Index(m.names, cfg.Algorithm)

	values, err := cfg.Array()
	if err != nil {
		return Model{}, err
	}
	m.values = values
	if err := m.load(); err != nil {
		return Model{}, err
	}
	return m, nil
}

func (m Model) Engine() *player.Engine { return m.engine }

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	session := m.session
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return TickMsg{Session: session, Time: t} })
}

func (m *Model) load() error {
	name := m.names[m.algo]
	info, err := algorithms.Lookup(name)
	if err != nil {
		return err
	}
	tr, err := algorithms.Generate(name, m.values)
	if err != nil {
		return err
	}
	if err := m.engine.Load(tr, m.cfg.Speed); err != nil {
		return err
	}
	m.info, m.tr = info, tr
	m.cfg.Algorithm = name
	m.state = m.engine.State()
	return nil
}

// Update handles input events and refreshes the engine snapshot.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickMsg:
		if msg.Session != m.session {
			return m, nil
		}
		m.state = m.engine.State()
		if m.notice != "" && !msg.Time.Before(m.noticeUntil) {
			m.notice = ""
		}
		return m, m.tick()
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.engine.Reset()
		return m, tea.Quit
	case " ", "enter":
		m.togglePlay()
	case "n":
		m.newArray()
	case "r":
		m.engine.Reset()
	case "s":
		m.err = m.engine.Step()
	case "+", "=":
		m.changeSpeed(speedStep)
	case "-", "_":
		m.changeSpeed(-speedStep)
	case "right", "l", "tab":
		m.switchAlgorithm(1)
	case "left", "h", "shift+tab":
		m.switchAlgorithm(-1)
	case "i":
		m.showInfo = !m.showInfo
	case "?":
		m.showHelp = !m.showHelp
	case "t":
		m.theme = NextTheme(m.theme.Name)
		m.cfg.Theme = m.theme.Name
	case "c":
		m.compact = !m.compact
	}
	m.state = m.engine.State()
	return m, nil
}

// togglePlay is the single start / pause / continue control. A finished
// playback is rewound and played again.
func (m *Model) togglePlay() {
	switch m.engine.State().Status {
	case player.Running:
		m.err = m.engine.Pause()
	case player.Completed:
		m.engine.Reset()
		m.err = m.engine.Start()
	default:
		m.err = m.engine.Start()
	}
}

// newArray draws a fresh input of the configured shape. It is refused
// while playback is running.
func (m *Model) newArray() {
	if m.engine.State().Status == player.Running {
		m.setNotice("Pause before generating a new array")
		return
	}
	values, err := algorithms.Shape(m.cfg.Shape, m.cfg.ArraySize, m.rng.Int63())
	if err != nil {
		m.err = err
		return
	}
	m.values = values
	m.err = m.load()
}

func (m *Model) changeSpeed(delta int) {
	speed := min(max(m.cfg.Speed+delta, player.MinSpeed), player.MaxSpeed)
	if err := m.engine.SetSpeed(speed); err != nil {
		m.err = err
		return
	}
	m.cfg.Speed = speed
}

// switchAlgorithm loads the same input under another algorithm, which
// stops any playback in progress.
func (m *Model) switchAlgorithm(dir int) {
	n := len(m.names)
	m.algo = ((m.algo+dir)%n + n) % n
	if m.err = m.load(); m.err == nil {
		m.setNotice("Switched to " + m.info.Name)
	}
}

func (m *Model) setNotice(text string) {
	m.notice = text
	m.noticeUntil = m.clock().Add(noticeFor)
}

func (m Model) View() string {
	s := m.state
	accent := lipgloss.Color(m.info.Color)

	var left strings.Builder
	left.WriteString(titleStyle.Foreground(accent).Render("SORTVIZ · "+m.info.Name) + "\n")
	left.WriteString(m.renderBars(s))
	left.WriteString(m.legend() + "\n\n")
	left.WriteString(m.statusLine(s) + "\n")
	if m.notice != "" {
		left.WriteString(noticeStyle.Render(m.notice) + "\n")
	}
	left.WriteString("\n" + KeyHints("space", "start/pause", "n", "new", "r", "reset", "s", "step", "+/-", "speed", "←/→", "algorithm", "i", "info", "?", "help", "q", "quit"))

	main := lipgloss.JoinHorizontal(lipgloss.Top, left.String(), statsStyle.Render(m.stats(s)))
	if m.showInfo {
		main = lipgloss.JoinVertical(lipgloss.Left, main, m.infoPanel())
	}
	if m.showHelp {
		help := helpText
		if !m.inMenu {
			help = strings.Replace(help, escHelpLine, "", 1)
		}
		return help + "\n\n" + main
	}
	return main
}

func (m Model) statusLine(s player.State) string {
	line := fmt.Sprintf("Size: %d  Speed: %d%%  ", len(s.Array), s.Speed)
	switch s.Status {
	case player.Completed:
		return line + successStyle.Render("Sorting Complete!")
	case player.Running:
		return line + StatusRunning.Render("SORTING")
	case player.Paused:
		return line + StatusPaused.Render("PAUSED")
	}
	return line + StatusIdle.Render("READY")
}

func (m Model) legend() string {
	swatch := func(c lipgloss.Color, label string) string {
		return lipgloss.NewStyle().Foreground(c).Render("■") + hintStyle.Render(" "+label+"  ")
	}
	return swatch(m.theme.Comparing, "comparing") +
		swatch(m.theme.Swapping, "swapping") +
		swatch(m.theme.Sorted, "sorted") +
		swatch(lipgloss.Color(m.info.Color), "unsorted")
}

func (m Model) stats(s player.State) string {
	tally := metrics.TallyAt(m.tr, s.Cursor)

	var b strings.Builder
	row := func(label, value string) {
		b.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("Algorithm", m.info.Name)
	row("Step", fmt.Sprintf("%d / %d", s.Cursor, s.Total))
	b.WriteString(ProgressBar(s.Progress(), 24) + "\n")
	row("Comparisons", fmt.Sprint(tally.Comparisons))
	row("Swaps", fmt.Sprint(tally.Swaps))
	row("Sorted", fmt.Sprintf("%d / %d", len(s.Sorted), len(s.Array)))
	row("Delay", m.engine.Delay().String())
	row("Shape", m.cfg.Shape)
	row("Theme", m.theme.Name)

	if s.Cursor > 1 {
		ops := metrics.Operations(m.tr.Events[:s.Cursor])
		chart := asciigraph.Plot(ops, asciigraph.Height(5), asciigraph.Width(24), asciigraph.Caption("operations"))
		b.WriteString(graphStyle.Render(chart) + "\n")
	}
	return b.String()
}

func (m Model) infoPanel() string {
	in := m.info
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(in.Color)).Render(in.Name) + "\n")
	b.WriteString(in.Description + "\n\n")
	b.WriteString(labelStyle.Render("Best") + valueStyle.Render(in.TimeComplexity.Best) + "\n")
	b.WriteString(labelStyle.Render("Average") + valueStyle.Render(in.TimeComplexity.Average) + "\n")
	b.WriteString(labelStyle.Render("Worst") + valueStyle.Render(in.TimeComplexity.Worst) + "\n")
	b.WriteString(labelStyle.Render("Space") + valueStyle.Render(in.SpaceComplexity) + "\n")
	stable := "No"
	if in.Stable {
		stable = "Yes"
	}
	b.WriteString(labelStyle.Render("Stable") + valueStyle.Render(stable) + "\n\n")
	for i, step := range in.Steps {
		b.WriteString(fmt.Sprintf("%d. %s\n", i+1, step))
	}
	return panelStyle.Width(min(m.width-4, 100)).Render(b.String())
}

const escHelpLine = "║  Esc      - Back to menu             ║\n"

const helpText = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Start / pause / continue ║
║  N        - New array (when stopped) ║
║  R        - Reset playback           ║
║  S        - Single step              ║
║  + / -    - Speed up / slow down     ║
║  ← / →    - Previous / next algorithm║
║  I        - Toggle algorithm info    ║
║  C        - Toggle compact bars      ║
║  T        - Cycle themes             ║
║  Esc      - Back to menu             ║
║  Q        - Quit                     ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝`
