package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/sortviz/internal/algorithms"
	"github.com/san-kum/sortviz/internal/log"
	"github.com/san-kum/sortviz/internal/player"
)

const (
	DefaultAlgorithm   = "bubble"
	DefaultArraySize   = 50
	DefaultSpeed       = 50
	DefaultShape       = "random"
	DefaultBaseDelayMs = 500
	DefaultMinDelayMs  = 1
	DefaultTheme       = "cyberpunk"

	MinArraySize = 5
	MaxArraySize = 200
)

var ErrInvalidConfig = errors.New("config: invalid")

// Themes lists the colour themes the interface ships.
var Themes = []string{"cyberpunk", "retro", "minimal", "ocean", "sunset"}

type Config struct {
	Algorithm   string    `yaml:"algorithm"`
	ArraySize   int       `yaml:"array_size"`
	Speed       int       `yaml:"speed"`
	Seed        int64     `yaml:"seed"`
	Shape       string    `yaml:"shape"`
	BaseDelayMs int       `yaml:"base_delay_ms"`
	MinDelayMs  int       `yaml:"min_delay_ms"`
	Theme       string    `yaml:"theme"`
	Log         LogConfig `yaml:"log"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func DefaultConfig() *Config {
	return &Config{
		Algorithm:   DefaultAlgorithm,
		ArraySize:   DefaultArraySize,
		Speed:       DefaultSpeed,
		Shape:       DefaultShape,
		BaseDelayMs: DefaultBaseDelayMs,
		MinDelayMs:  DefaultMinDelayMs,
		Theme:       DefaultTheme,
		Log: LogConfig{
			Level:  "info",
			Format: string(log.FormatText),
		},
	}
}

// Load reads a YAML file on top of DefaultConfig, so omitted keys keep
// their defaults. The result is validated.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if _, err := algorithms.Lookup(c.Algorithm); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.ArraySize < MinArraySize || c.ArraySize > MaxArraySize {
		return fmt.Errorf("%w: array_size %d not in [%d, %d]", ErrInvalidConfig, c.ArraySize, MinArraySize, MaxArraySize)
	}
	if c.Speed < player.MinSpeed || c.Speed > player.MaxSpeed {
		return fmt.Errorf("%w: speed %d not in [%d, %d]", ErrInvalidConfig, c.Speed, player.MinSpeed, player.MaxSpeed)
	}
	if c.Shape != "" && !slices.Contains(algorithms.Shapes, c.Shape) {
		return fmt.Errorf("%w: unknown shape %q", ErrInvalidConfig, c.Shape)
	}
	if c.Theme != "" && !slices.Contains(Themes, c.Theme) {
		return fmt.Errorf("%w: unknown theme %q", ErrInvalidConfig, c.Theme)
	}
	if c.BaseDelayMs <= 0 || c.MinDelayMs <= 0 {
		return fmt.Errorf("%w: delays must be positive", ErrInvalidConfig)
	}
	if c.MinDelayMs > c.BaseDelayMs {
		return fmt.Errorf("%w: min_delay_ms %d exceeds base_delay_ms %d", ErrInvalidConfig, c.MinDelayMs, c.BaseDelayMs)
	}
	return nil
}

func (c *Config) BaseDelay() time.Duration {
	return time.Duration(c.BaseDelayMs) * time.Millisecond
}

func (c *Config) MinDelay() time.Duration {
	return time.Duration(c.MinDelayMs) * time.Millisecond
}

// Array builds the input array described by Shape, ArraySize and Seed.
func (c *Config) Array() ([]int, error) {
	return algorithms.Shape(c.Shape, c.ArraySize, c.Seed)
}

// PlayerOptions returns the engine options implied by the delay settings.
func (c *Config) PlayerOptions() []player.Option {
	return []player.Option{
		player.WithBaseDelay(c.BaseDelay()),
		player.WithMinDelay(c.MinDelay()),
	}
}

// LoggerConfig converts the log section into a logger config writing to w.
func (c *Config) LoggerConfig(w io.Writer) *log.Config {
	cfg := log.DefaultConfig()
	if c.Log.Level != "" {
		cfg.Level = c.Log.Level
	}
	if c.Log.Format != "" {
		cfg.Format = log.Format(c.Log.Format)
	}
	cfg.Output = w
	return cfg
}
