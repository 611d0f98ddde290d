package tui

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"golang.org/x/time/rate"

	"github.com/san-kum/sortviz/internal/player"
)

const (
	height      = 16
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"

	colorReset   = "\033[0m"
	colorCompare = "\033[33m"
	colorSwap    = "\033[35m"
	colorSorted  = "\033[32m"
)

// LiveRenderer draws engine states as plain ANSI frames. It is meant to be
// registered with Engine.Subscribe; frames arriving faster than the frame
// rate are dropped, except the one that completes playback.
type LiveRenderer struct {
	out   io.Writer
	color bool

	mu      sync.Mutex
	limiter *rate.Limiter
	canvas  [][]rune
}

func NewLiveRenderer(out io.Writer, frameRate int, color bool) *LiveRenderer {
	if frameRate <= 0 {
		frameRate = 30
	}
	return &LiveRenderer{
		out:     out,
		color:   color,
		limiter: rate.NewLimiter(rate.Limit(frameRate), 1),
	}
}

// OnState renders s unless it arrives too soon after the previous frame.
func (r *LiveRenderer) OnState(s player.State) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s.Status != player.Completed && s.Status != player.Idle {
		if !r.limiter.Allow() {
			return
		}
	}

	fmt.Fprint(r.out, clearScreen+r.Frame(s))
}

// Frame returns the text of one frame without the clear-screen prefix.
func (r *LiveRenderer) Frame(s player.State) string {
	r.draw(s)

	var b strings.Builder
	b.WriteString(fmt.Sprintf("  %s  %s  step %d/%d  speed %d%%\n", s.Algorithm, s.Status, s.Cursor, s.Total, s.Speed))
	b.WriteString("  " + strings.Repeat("-", len(s.Array)) + "\n")

	for _, row := range r.canvas {
		b.WriteString("  ")
		current := ""
		for x, c := range row {
			if r.color {
				code := ""
				if c != ' ' {
					code = colorFor(s, x)
				}
				if code != current {
					if code == "" {
						b.WriteString(colorReset)
					} else {
						b.WriteString(code)
					}
					current = code
				}
			}
			b.WriteRune(c)
		}
		if current != "" {
			b.WriteString(colorReset)
		}
		b.WriteString("\n")
	}

	b.WriteString("  " + strings.Repeat("-", len(s.Array)) + "\n")
	if s.Status == player.Completed {
		b.WriteString("  Sorting Complete!\n")
	}
	return b.String()
}

func (r *LiveRenderer) draw(s player.State) {
	w := len(s.Array)
	if len(r.canvas) != height || (height > 0 && len(r.canvas[0]) != w) {
		r.canvas = make([][]rune, height)
		for i := range r.canvas {
			r.canvas[i] = make([]rune, w)
		}
	}
	for y := range r.canvas {
		for x := range r.canvas[y] {
			r.canvas[y][x] = ' '
		}
	}

	peak := 1
	for _, v := range s.Array {
		peak = max(peak, v)
	}

	for x, v := range s.Array {
		bh := max(v*height/peak, 1)
		c := barRune(s, x)
		for y := height - 1; y >= height-bh; y-- {
			r.set(x, y, c)
		}
	}
}

func (r *LiveRenderer) set(x, y int, c rune) {
	if y >= 0 && y < len(r.canvas) && x >= 0 && x < len(r.canvas[y]) {
		r.canvas[y][x] = c
	}
}

func colorFor(s player.State, i int) string {
	switch {
	case s.IsSorted(i):
		return colorSorted
	case s.IsComparing(i):
		return colorCompare
	case s.IsSwapping(i):
		return colorSwap
	}
	return ""
}

// barRune keeps highlight classes distinguishable without colour.
func barRune(s player.State, i int) rune {
	switch {
	case s.IsSorted(i):
		return '='
	case s.IsComparing(i):
		return '?'
	case s.IsSwapping(i):
		return '*'
	}
	return '#'
}

func (r *LiveRenderer) Start() { fmt.Fprint(r.out, hideCursor) }
func (r *LiveRenderer) Stop()  { fmt.Fprint(r.out, showCursor) }
