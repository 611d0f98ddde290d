package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/sortviz/internal/player"
)

type barClass int

const (
	classUnsorted barClass = iota
	classSwapping
	classComparing
	classSorted
)

// classify orders highlight classes so that the larger value wins:
// sorted > comparing > swapping > unsorted.
func classify(s player.State, i int) barClass {
	switch {
	case s.IsSorted(i):
		return classSorted
	case s.IsComparing(i):
		return classComparing
	case s.IsSwapping(i):
		return classSwapping
	}
	return classUnsorted
}

func (m Model) barStyles() [4]lipgloss.Style {
	return [4]lipgloss.Style{
		classUnsorted:  lipgloss.NewStyle().Foreground(lipgloss.Color(m.info.Color)),
		classSwapping:  lipgloss.NewStyle().Foreground(m.theme.Swapping),
		classComparing: lipgloss.NewStyle().Foreground(m.theme.Comparing),
		classSorted:    lipgloss.NewStyle().Foreground(m.theme.Sorted),
	}
}

func (m Model) renderBars(s player.State) string {
	n := len(s.Array)
	if n == 0 {
		return strings.Repeat("\n", barRows)
	}
	avail := max(m.width-sidePanel, 20)
	if m.compact || n > avail {
		return m.renderCompact(s, avail)
	}

	barW := max(avail/n, 1)
	barW = min(barW, 4)
	cell := strings.Repeat("█", barW)
	if barW >= 3 {
		cell = strings.Repeat("█", barW-1) + " "
	}
	blank := strings.Repeat(" ", barW)

	heights := barHeights(s.Array, barRows)
	styles := m.barStyles()

	var b strings.Builder
	for row := 0; row < barRows; row++ {
		level := barRows - row
		var run strings.Builder
		current := barClass(-1)
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if current < 0 {
				b.WriteString(run.String())
			} else {
				b.WriteString(styles[current].Render(run.String()))
			}
			run.Reset()
		}

		for i := range s.Array {
			class := barClass(-1)
			if heights[i] >= level {
				class = classify(s, i)
			}
			if class != current {
				flush()
				current = class
			}
			if class < 0 {
				run.WriteString(blank)
			} else {
				run.WriteString(cell)
			}
		}
		flush()
		b.WriteString("\n")
	}
	return b.String()
}

// renderCompact draws two bars per column on a Braille canvas. Each cell
// takes the colour of the more important of its two bars.
func (m Model) renderCompact(s player.State, avail int) string {
	n := len(s.Array)
	cols := min((n+1)/2, avail)
	canvas := NewCanvas(cols, barRows/2)
	canvas.DrawBars(s.Array, peakOf(s.Array))
	styles := m.barStyles()

	var b strings.Builder
	for _, row := range canvas.Grid {
		for col, r := range row {
			class := classify(s, 2*col)
			if 2*col+1 < n {
				class = max(class, classify(s, 2*col+1))
			}
			b.WriteString(styles[class].Render(string(r)))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// barHeights scales values to whole rows, keeping every positive value
// at least one row tall.
func barHeights(values []int, rows int) []int {
	peak := peakOf(values)
	h := make([]int, len(values))
	for i, v := range values {
		h[i] = v * rows / peak
		if v > 0 && h[i] == 0 {
			h[i] = 1
		}
	}
	return h
}

func peakOf(values []int) int {
	peak := 1
	for _, v := range values {
		peak = max(peak, v)
	}
	return peak
}
