package viz

import (
	"strings"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const brailleBlank = 0x2800

// Canvas is a Braille pixel grid. Each cell holds 2x4 sub-pixels, so a
// compact bar chart fits two bars per terminal column.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// Set lights the sub-pixel (x, y). Out-of-range points are ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
		}
	}
}

// Bar fills sub-pixel column x from the bottom up to h sub-pixels.
func (c *Canvas) Bar(x, h int) {
	bottom := c.Height*4 - 1
	for y := bottom; y > bottom-h && y >= 0; y-- {
		c.Set(x, y)
	}
}

// DrawBars plots values as bars scaled so that peak fills the height.
// Values beyond Width*2 are dropped.
func (c *Canvas) DrawBars(values []int, peak int) {
	c.Clear()
	if peak <= 0 {
		return
	}
	full := c.Height * 4
	for i, v := range values {
		h := v * full / peak
		if v > 0 && h == 0 {
			h = 1
		}
		c.Bar(i, h)
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}
