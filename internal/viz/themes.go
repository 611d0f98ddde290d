package viz

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/sortviz/internal/export"
)

// Theme defines the colour scheme for the TUI. Bars use Comparing,
// Swapping and Sorted; unsorted bars take the algorithm's own colour.
type Theme struct {
	Name       string
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Background lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Comparing  lipgloss.Color
	Swapping   lipgloss.Color
	Sorted     lipgloss.Color
	Error      lipgloss.Color
}

var (
	ThemeCyberpunk = Theme{
		Name:       "cyberpunk",
		Primary:    lipgloss.Color("#ff00ff"),
		Secondary:  lipgloss.Color("#00ffff"),
		Background: lipgloss.Color("#0a0a0a"),
		Text:       lipgloss.Color("#ffffff"),
		Muted:      lipgloss.Color("#666666"),
		Comparing:  lipgloss.Color("#ffff00"),
		Swapping:   lipgloss.Color("#ff8800"),
		Sorted:     lipgloss.Color("#00ff00"),
		Error:      lipgloss.Color("#ff0000"),
	}

	ThemeRetroGreen = Theme{
		Name:       "retro",
		Primary:    lipgloss.Color("#00ff00"),
		Secondary:  lipgloss.Color("#00cc00"),
		Background: lipgloss.Color("#001100"),
		Text:       lipgloss.Color("#00ff00"),
		Muted:      lipgloss.Color("#005500"),
		Comparing:  lipgloss.Color("#ffff00"),
		Swapping:   lipgloss.Color("#88ff88"),
		Sorted:     lipgloss.Color("#ffffff"),
		Error:      lipgloss.Color("#ff0000"),
	}

	ThemeMinimal = Theme{
		Name:       "minimal",
		Primary:    lipgloss.Color("#ffffff"),
		Secondary:  lipgloss.Color("#cccccc"),
		Background: lipgloss.Color("#000000"),
		Text:       lipgloss.Color("#ffffff"),
		Muted:      lipgloss.Color("#888888"),
		Comparing:  lipgloss.Color("#ffaa00"),
		Swapping:   lipgloss.Color("#0088ff"),
		Sorted:     lipgloss.Color("#00ff00"),
		Error:      lipgloss.Color("#ff0000"),
	}

	ThemeOcean = Theme{
		Name:       "ocean",
		Primary:    lipgloss.Color("#0077be"),
		Secondary:  lipgloss.Color("#00a8cc"),
		Background: lipgloss.Color("#001a33"),
		Text:       lipgloss.Color("#e0f0ff"),
		Muted:      lipgloss.Color("#4488aa"),
		Comparing:  lipgloss.Color("#ffcc00"),
		Swapping:   lipgloss.Color("#ffd700"),
		Sorted:     lipgloss.Color("#00ff88"),
		Error:      lipgloss.Color("#ff4444"),
	}

	ThemeSunset = Theme{
		Name:       "sunset",
		Primary:    lipgloss.Color("#ff6b6b"),
		Secondary:  lipgloss.Color("#feca57"),
		Background: lipgloss.Color("#2d1b2e"),
		Text:       lipgloss.Color("#fff5f5"),
		Muted:      lipgloss.Color("#8b6b8c"),
		Comparing:  lipgloss.Color("#ffc048"),
		Swapping:   lipgloss.Color("#ff9ff3"),
		Sorted:     lipgloss.Color("#5fd068"),
		Error:      lipgloss.Color("#ff4757"),
	}

	Themes = []Theme{
		ThemeCyberpunk,
		ThemeRetroGreen,
		ThemeMinimal,
		ThemeOcean,
		ThemeSunset,
	}
)

// GetTheme returns a theme by name, falling back to cyberpunk.
func GetTheme(name string) Theme {
	return Themes[themeIndex(name)]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// NextTheme returns the theme after name, wrapping around.
func NextTheme(name string) Theme {
	return Themes[(themeIndex(name)+1)%len(Themes)]
}

func themeIndex(name string) int {
	for i, t := range Themes {
		if t.Name == name {
			return i
		}
	}
	return 0
}

// Palette converts the theme for SVG export with bar as the unsorted
// colour.
func (t Theme) Palette(bar string) export.Palette {
	return export.Palette{
		Background: string(t.Background),
		Bar:        bar,
		Comparing:  string(t.Comparing),
		Swapping:   string(t.Swapping),
		Sorted:     string(t.Sorted),
	}
}
