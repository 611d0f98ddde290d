package viz

import (
	"slices"
	"strings"
	"testing"

	"github.com/san-kum/sortviz/internal/config"
)

func TestCanvasDrawBars(t *testing.T) {
	c := NewCanvas(2, 1)
	c.DrawBars([]int{4, 2, 0, 1}, 4)

	// left cell: full column 0, lower half of column 1
	if got, want := c.Grid[0][0], rune(0x2800|0x1|0x2|0x4|0x40|0x20|0x80); got != want {
		t.Errorf("cell 0: expected %U, got %U", want, got)
	}
	// right cell: empty column 0, bottom dot of column 1
	if got, want := c.Grid[0][1], rune(0x2800|0x80); got != want {
		t.Errorf("cell 1: expected %U, got %U", want, got)
	}
}

func TestCanvasClipsAndClears(t *testing.T) {
	c := NewCanvas(1, 1)
	c.Set(-1, 0)
	c.Set(5, 0)
	c.Set(0, 9)
	if c.Grid[0][0] != brailleBlank {
		t.Error("out-of-range points should be ignored")
	}

	c.Set(0, 0)
	c.Clear()
	if strings.TrimSpace(c.String()) != string(rune(brailleBlank)) {
		t.Errorf("expected blank canvas, got %q", c.String())
	}
}

func TestBarHeights(t *testing.T) {
	got := barHeights([]int{1, 50, 100}, 20)
	want := []int{1, 10, 20}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("bar %d: expected %d, got %d", i, want[i], got[i])
		}
	}
}

func TestThemes(t *testing.T) {
	if GetTheme("nope").Name != "cyberpunk" {
		t.Error("expected fallback theme")
	}
	if NextTheme("sunset").Name != "cyberpunk" {
		t.Error("expected wrap-around")
	}
	if !slices.Equal(ThemeNames(), config.Themes) {
		t.Errorf("theme names %v do not match config %v", ThemeNames(), config.Themes)
	}
	p := ThemeOcean.Palette("#123456")
	if p.Bar != "#123456" || p.Sorted != string(ThemeOcean.Sorted) {
		t.Errorf("unexpected palette %+v", p)
	}
}
