package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/sortviz/internal/player"
)

// Palette holds the hex colours used for each bar class.
type Palette struct {
	Background string
	Bar        string
	Comparing  string
	Swapping   string
	Sorted     string
}

var DefaultPalette = Palette{
	Background: "#1A202C",
	Bar:        "#4C51BF",
	Comparing:  "#ECC94B",
	Swapping:   "#ED64A6",
	Sorted:     "#48BB78",
}

// WithBar returns a copy of p using color for unsorted bars. An empty
// color keeps the current one.
func (p Palette) WithBar(color string) Palette {
	if color != "" {
		p.Bar = color
	}
	return p
}

// BarColor picks the colour for index i with precedence
// sorted > comparing > swapping > unsorted.
func (p Palette) BarColor(s player.State, i int) string {
	switch {
	case s.IsSorted(i):
		return p.Sorted
	case s.IsComparing(i):
		return p.Comparing
	case s.IsSwapping(i):
		return p.Swapping
	}
	return p.Bar
}

// FrameToSVG draws one playback frame as vertical bars scaled to the
// largest value.
func FrameToSVG(s player.State, p Palette, width, height int) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, p.Background))

	n := len(s.Array)
	if n > 0 {
		peak := 1
		for _, v := range s.Array {
			peak = max(peak, v)
		}

		slot := float64(width) / float64(n)
		gap := slot * 0.1
		for i, v := range s.Array {
			h := float64(v) / float64(peak) * float64(height) * 0.95
			x := float64(i)*slot + gap/2
			y := float64(height) - h
			sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>
`, x, y, slot-gap, h, p.BarColor(s, i)))
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// SeriesToSVG plots a series as a polyline, typically the cumulative
// operation count of a trace.
func SeriesToSVG(series []float64, width, height int, strokeColor string) string {
	if len(series) < 2 {
		return ""
	}

	minY, maxY := series[0], series[0]
	for _, v := range series {
		minY = min(minY, v)
		maxY = max(maxY, v)
	}
	rangeY := maxY - minY
	if rangeY == 0 {
		rangeY = 1
	}
	rangeX := float64(len(series) - 1)

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, DefaultPalette.Background, strokeColor))

	for i, v := range series {
		x := float64(i) / rangeX * float64(width)
		y := float64(height) - (v-minY)/rangeY*float64(height)

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
