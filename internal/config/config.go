// Package config holds the tunable constants of the plot and loads them
// from an optional YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// PlotHeight is the plot area height in terminal rows.
	PlotHeight int `yaml:"plot_height"`

	BrushDebounce  time.Duration `yaml:"brush_debounce"`
	ResizeDebounce time.Duration `yaml:"resize_debounce"`

	BatchBudget  time.Duration `yaml:"batch_budget"`
	BatchMin     int           `yaml:"batch_min"`
	BatchMax     int           `yaml:"batch_max"`
	BatchInitial int           `yaml:"batch_initial"`

	// Pixel constants, in braille dots.
	EdgeThreshold float64 `yaml:"edge_threshold"`
	AxisInset     float64 `yaml:"axis_inset"`
	Overshoot     float64 `yaml:"overshoot"`

	// Seed for the render shuffle; 0 picks one from the clock.
	Seed int64 `yaml:"seed"`

	StateFile string `yaml:"state_file"`
	LogFile   string `yaml:"log_file"`
	LogLevel  string `yaml:"log_level"`
}

func Default() Config {
	return Config{
		PlotHeight:     20,
		BrushDebounce:  75 * time.Millisecond,
		ResizeDebounce: 100 * time.Millisecond,
		BatchBudget:    30 * time.Millisecond,
		BatchMin:       8,
		BatchMax:       300,
		BatchInitial:   10,
		EdgeThreshold:  12,
		AxisInset:      16,
		Overshoot:      15,
		StateFile:      ".parcoords.yaml",
		LogLevel:       "info",
	}
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	switch {
	case c.BatchMin <= 0 || c.BatchMax <= 0:
		return fmt.Errorf("config: batch limits must be positive (min %d, max %d)", c.BatchMin, c.BatchMax)
	case c.BatchMin > c.BatchMax:
		return fmt.Errorf("config: batch_min %d exceeds batch_max %d", c.BatchMin, c.BatchMax)
	case c.BatchInitial <= 0:
		return fmt.Errorf("config: batch_initial must be positive, got %d", c.BatchInitial)
	case c.BatchBudget <= 0:
		return fmt.Errorf("config: batch_budget must be positive")
	case c.PlotHeight < 4:
		return fmt.Errorf("config: plot_height %d is too small", c.PlotHeight)
	case c.EdgeThreshold < 0 || c.AxisInset < 0 || c.Overshoot < 0:
		return fmt.Errorf("config: pixel constants must not be negative")
	case c.AxisInset <= c.EdgeThreshold:
		// at or under the threshold a plain click on the outermost label removes its axis
		return fmt.Errorf("config: axis_inset %g must exceed edge_threshold %g", c.AxisInset, c.EdgeThreshold)
	}
	return nil
}
