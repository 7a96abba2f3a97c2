// Package config holds the tunable parameters of the bonk grid.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	WindowWidth  = 1024
	WindowHeight = 1024

	// Grid parameters
	RectCountX = 30
	RectCountY = 30
	RectGap    = 1.0

	// Excitement parameters
	DecayRate      = 0.02
	SleepThreshold = 0.001
	SpeedLimit     = 1.0
	HueRate        = 0.5

	// Offsets used to move the centred origin toward the bottom left.
	// Neither is exactly 2; the visual layout depends on these values.
	LayoutDivisor = 2.2
	LookupDivisor = 2.05

	// MaxTPS keeps the tick interval well above zero.
	MaxTPS = 1000
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config holds all runtime parameters.
type Config struct {
	Window WindowConfig `yaml:"window"`
	Grid   GridConfig   `yaml:"grid"`
	Bonk   BonkConfig   `yaml:"bonk"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Width         int    `yaml:"width"`
	Height        int    `yaml:"height"`
	Title         string `yaml:"title"`
	TPS           int    `yaml:"tps"`
	CursorVisible bool   `yaml:"cursor_visible"`
}

// GridConfig holds grid layout settings.
type GridConfig struct {
	Cols          int     `yaml:"cols"`
	Rows          int     `yaml:"rows"`
	Gap           float64 `yaml:"gap"`
	LayoutDivisor float64 `yaml:"layout_divisor"` // cell placement offset = size / this
	LookupDivisor float64 `yaml:"lookup_divisor"` // cursor lookup offset = size / this
}

// BonkConfig holds excitement and colour settings.
type BonkConfig struct {
	DecayRate      float64 `yaml:"decay_rate"`      // fraction removed per tick
	SleepThreshold float64 `yaml:"sleep_threshold"` // below this a cell stops drawing
	SpeedLimit     float64 `yaml:"speed_limit"`     // px/ms mapped to full excitement
	HueRate        float64 `yaml:"hue_rate"`        // degrees per px/ms per tick
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Width:  WindowWidth,
			Height: WindowHeight,
			Title:  "bonk",
			TPS:    60,
		},
		Grid: GridConfig{
			Cols:          RectCountX,
			Rows:          RectCountY,
			Gap:           RectGap,
			LayoutDivisor: LayoutDivisor,
			LookupDivisor: LookupDivisor,
		},
		Bonk: BonkConfig{
			DecayRate:      DecayRate,
			SleepThreshold: SleepThreshold,
			SpeedLimit:     SpeedLimit,
			HueRate:        HueRate,
		},
	}
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only fields present in the file are overwritten.
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports the first parameter that would break the grid.
func (c *Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	case c.Window.TPS <= 0 || c.Window.TPS > MaxTPS:
		return fmt.Errorf("%w: tps %d outside [1, %d]", ErrInvalid, c.Window.TPS, MaxTPS)
	case c.Grid.Cols <= 0 || c.Grid.Rows <= 0:
		return fmt.Errorf("%w: grid %dx%d", ErrInvalid, c.Grid.Cols, c.Grid.Rows)
	case c.Grid.Gap < 0:
		return fmt.Errorf("%w: gap %v", ErrInvalid, c.Grid.Gap)
	case c.Grid.LayoutDivisor <= 0 || c.Grid.LookupDivisor <= 0:
		return fmt.Errorf("%w: divisors must be positive", ErrInvalid)
	case c.Bonk.DecayRate <= 0 || c.Bonk.DecayRate >= 1:
		return fmt.Errorf("%w: decay_rate %v outside (0, 1)", ErrInvalid, c.Bonk.DecayRate)
	case c.Bonk.SleepThreshold <= 0:
		return fmt.Errorf("%w: sleep_threshold %v", ErrInvalid, c.Bonk.SleepThreshold)
	case c.Bonk.SpeedLimit <= 0:
		return fmt.Errorf("%w: speed_limit %v", ErrInvalid, c.Bonk.SpeedLimit)
	}
	return nil
}
