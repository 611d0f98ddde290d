package config

import "sort"

// Presets are named starting points combining an array shape with a size
// and speed suited to it.
var Presets = map[string]*Config{
	"demo": {
		Algorithm: "bubble", ArraySize: 30, Speed: 60, Shape: "random",
	},
	"best_case": {
		Algorithm: "insertion", ArraySize: 50, Speed: 70, Shape: "sorted",
	},
	"worst_case": {
		Algorithm: "insertion", ArraySize: 50, Speed: 85, Shape: "reversed",
	},
	"nearly_sorted": {
		Algorithm: "insertion", ArraySize: 60, Speed: 70, Shape: "nearly_sorted",
	},
	"duplicates": {
		Algorithm: "quick", ArraySize: 60, Speed: 75, Shape: "few_unique",
	},
	"large": {
		Algorithm: "merge", ArraySize: 150, Speed: 98, Shape: "random",
	},
	"tiny": {
		Algorithm: "selection", ArraySize: 8, Speed: 25, Shape: "random",
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Apply copies the preset's playback fields onto c. Delays, theme and
// logging are left alone.
func (c *Config) Apply(preset *Config) {
	c.Algorithm = preset.Algorithm
	c.ArraySize = preset.ArraySize
	c.Speed = preset.Speed
	c.Shape = preset.Shape
}
