package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444466")).
			Padding(0, 1)
	statsStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 2).
			Width(36)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(13)
	valueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	keyStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#00aaaa")).Bold(true)
	hintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#555566"))
	noticeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Background(lipgloss.Color("#553c9a")).Padding(0, 1)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#48bb78")).Bold(true)

	StatusRunning = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ff88"))
	StatusPaused  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffaa00"))
	StatusIdle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#888899"))

	SparkHigh = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff88"))
	SparkMid  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffcc00"))
	SparkLow  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444"))
)

// ProgressBar renders a bar filled to percent (0..1).
func ProgressBar(percent float64, width int) string {
	filled := int(percent * float64(width))
	filled = min(max(filled, 0), width)

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	switch {
	case percent >= 1:
		return SparkHigh.Render(bar)
	case percent > 0.4:
		return SparkMid.Render(bar)
	}
	return SparkLow.Render(bar)
}

// KeyHints renders pairs of key and description on one line.
func KeyHints(pairs ...string) string {
	var b strings.Builder
	for i := 0; i+1 < len(pairs); i += 2 {
		if i > 0 {
			b.WriteString(hintStyle.Render("  "))
		}
		b.WriteString(keyStyle.Render(pairs[i]))
		b.WriteString(hintStyle.Render(" " + pairs[i+1]))
	}
	return b.String()
}

func Separator(width int) string {
	mid := width / 2
	left := strings.Repeat("─", max(mid-3, 0))
	right := strings.Repeat("─", max(width-mid-3, 0))
	return hintStyle.Render(left + " ◆ " + right)
}
