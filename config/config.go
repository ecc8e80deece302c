// Package config loads the host runner's YAML configuration.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/RocketPrinter/HexagonalWFC/wfc"
)

// ErrInvalid indicates a configuration value outside its allowed range.
var ErrInvalid = errors.New("config: invalid value")

// Config holds everything the runner needs.
type Config struct {
	Catalog string       `yaml:"catalog"`
	Grid    GridConfig   `yaml:"grid"`
	Pacing  PacingConfig `yaml:"pacing"`
	Log     LogConfig    `yaml:"log"`
	Output  OutputConfig `yaml:"output"`
}

// GridConfig holds engine construction settings.
type GridConfig struct {
	Size int   `yaml:"size"`
	Seed int64 `yaml:"seed"` // 0 lets the engine pick
	// Strict defaults to true when omitted.
	Strict *bool `yaml:"strict"`
}

// PacingConfig selects drain or step pacing.
type PacingConfig struct {
	Mode         string        `yaml:"mode"` // drain | step
	StepsPerTick int           `yaml:"steps_per_tick"`
	Interval     time.Duration `yaml:"interval"` // wall-clock tick period in step mode
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
}

// OutputConfig enables the optional sinks. Empty fields disable them.
type OutputConfig struct {
	EventDir string `yaml:"event_dir"` // compressed event log directory
	Index    string `yaml:"index"`     // sqlite run index path
	Listen   string `yaml:"listen"`    // websocket stream address, e.g. ":8080"
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads configuration from a YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML, fills defaults and validates.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Grid.Size == 0 {
		c.Grid.Size = 15
	}
	if c.Grid.Strict == nil {
		strict := true
		c.Grid.Strict = &strict
	}
	if c.Pacing.Mode == "" {
		c.Pacing.Mode = wfc.PaceDrain.String()
	}
	if c.Pacing.StepsPerTick == 0 {
		c.Pacing.StepsPerTick = 1
	}
	if c.Pacing.Interval == 0 {
		c.Pacing.Interval = 50 * time.Millisecond
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks ranges and enumerations.
func (c *Config) Validate() error {
	if c.Grid.Size <= 0 || c.Grid.Size%2 == 0 {
		return fmt.Errorf("%w: grid.size %d must be positive and odd", ErrInvalid, c.Grid.Size)
	}
	if _, err := wfc.ParsePaceMode(c.Pacing.Mode); err != nil {
		return fmt.Errorf("%w: pacing.mode: %v", ErrInvalid, err)
	}
	if c.Pacing.StepsPerTick < 1 {
		return fmt.Errorf("%w: pacing.steps_per_tick %d must be >= 1", ErrInvalid, c.Pacing.StepsPerTick)
	}
	if c.Pacing.Interval < 0 {
		return fmt.Errorf("%w: pacing.interval %s is negative", ErrInvalid, c.Pacing.Interval)
	}
	if _, err := c.level(); err != nil {
		return err
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log.format %q", ErrInvalid, c.Log.Format)
	}
	return nil
}

// Strict reports the effective strict flag.
func (c *Config) Strict() bool {
	return c.Grid.Strict == nil || *c.Grid.Strict
}

// EnginePacing converts the pacing section. The config must be valid.
func (c *Config) EnginePacing() wfc.Pacing {
	mode, _ := wfc.ParsePaceMode(c.Pacing.Mode)
	return wfc.Pacing{Mode: mode, StepsPerTick: c.Pacing.StepsPerTick}
}

// EngineOptions converts the grid and pacing sections to engine options.
// The config must be valid.
func (c *Config) EngineOptions() []wfc.Option {
	return []wfc.Option{
		wfc.WithSeed(c.Grid.Seed),
		wfc.WithStrict(c.Strict()),
		wfc.WithPacing(c.EnginePacing()),
	}
}

func (c *Config) level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(c.Log.Level))); err != nil {
		return 0, fmt.Errorf("%w: log.level %q", ErrInvalid, c.Log.Level)
	}
	return lvl, nil
}

// Logger builds a text or JSON slog logger writing to w.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	lvl, err := c.level()
	if err != nil {
		lvl = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if c.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
