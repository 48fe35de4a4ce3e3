package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/paneshift/paneshift/internal/arrange"
	"github.com/paneshift/paneshift/internal/layout"
)

// ValidationError reports an invalid config value with the YAML path that
// holds it.
type ValidationError struct {
	Path string
	Err  error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error { return e.Err }

// PresetConfig is one named layout preset. Layout is a preset spec string
// ("2x3", "columns:4", "left-right", "main-side:0.66", ...). Weights apply to
// grid specs only.
type PresetConfig struct {
	Layout     string    `yaml:"layout"`
	RowWeights []float64 `yaml:"row_weights,omitempty"`
	ColWeights []float64 `yaml:"col_weights,omitempty"`
}

// AutoArrange configures the daemon's window watcher.
type AutoArrange struct {
	Enabled    bool   `yaml:"enabled"`
	Preset     string `yaml:"preset,omitempty"`
	IntervalMS int    `yaml:"interval_ms,omitempty"`
}

// Config is the user configuration.
type Config struct {
	// Target selects which windows are arranged: "terminals", "all" or
	// "custom" (match the Processes list).
	Target    string   `yaml:"target"`
	Processes []string `yaml:"processes,omitempty"`

	// Monitor is "primary" or a zero-based display index.
	Monitor string `yaml:"monitor"`

	// Gap is the pixel spacing between adjacent slots.
	Gap int `yaml:"gap"`

	// Exclude adds process names to the built-in exclusion list.
	Exclude []string `yaml:"exclude,omitempty"`

	LogLevel string `yaml:"log_level"`

	DefaultPreset string                  `yaml:"default_preset"`
	Presets       map[string]PresetConfig `yaml:"presets,omitempty"`

	AutoArrange AutoArrange `yaml:"auto_arrange"`

	// Hotkeys maps key sequences ("Mod4-g") to preset names. The daemon
	// registers them as global X11 shortcuts.
	Hotkeys map[string]string `yaml:"hotkeys,omitempty"`
}

const (
	DefaultGap        = 4
	DefaultIntervalMS = 800
)

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Target:        "all",
		Monitor:       "primary",
		Gap:           DefaultGap,
		LogLevel:      "info",
		DefaultPreset: "grid",
		Presets: map[string]PresetConfig{
			"grid":    {Layout: "2x2"},
			"columns": {Layout: "columns"},
			"rows":    {Layout: "rows"},
			"split":   {Layout: "left-right"},
			"stack":   {Layout: "top-bottom"},
			"main":    {Layout: "main-side"},
			"focus":   {Layout: "focus"},
		},
		AutoArrange: AutoArrange{
			Enabled:    false,
			IntervalMS: DefaultIntervalMS,
		},
	}
}

// DefaultConfigPath returns ~/.config/paneshift/config.yaml.
func DefaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "paneshift", "config.yaml"), nil
}

// Load reads the config from the standard location. A missing file yields
// the defaults.
func Load() (*Config, error) {
	path, err := DefaultConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads and validates a config file. A missing file yields the
// defaults; a malformed or invalid file is an error.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config to the standard location.
func (c *Config) Save() error {
	path, err := DefaultConfigPath()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes the config to path, creating parent directories as needed.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate checks every field and returns a path-scoped error for the first
// invalid value.
func (c *Config) Validate() error {
	switch c.Target {
	case "terminals", "all":
	case "custom":
		if len(c.Processes) == 0 {
			return &ValidationError{Path: "processes", Err: fmt.Errorf("custom target requires a processes list")}
		}
	default:
		return &ValidationError{Path: "target", Err: fmt.Errorf("target must be one of: terminals, all, custom")}
	}

	for i, p := range c.Processes {
		if strings.TrimSpace(p) == "" {
			return &ValidationError{Path: fmt.Sprintf("processes[%d]", i), Err: fmt.Errorf("process name must not be empty")}
		}
	}

	if c.Gap < 0 {
		return &ValidationError{Path: "gap", Err: fmt.Errorf("gap must be >= 0")}
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("log_level must be one of: debug, info, warn, error")}
	}

	for name, pc := range c.Presets {
		if err := validatePreset(name, pc); err != nil {
			return err
		}
	}

	if c.DefaultPreset != "" {
		if _, _, err := c.ResolvePreset(c.DefaultPreset); err != nil {
			return &ValidationError{Path: "default_preset", Err: err}
		}
	}

	if c.AutoArrange.IntervalMS < 0 {
		return &ValidationError{Path: "auto_arrange.interval_ms", Err: fmt.Errorf("interval_ms must be >= 0")}
	}
	if c.AutoArrange.Preset != "" {
		if _, _, err := c.ResolvePreset(c.AutoArrange.Preset); err != nil {
			return &ValidationError{Path: "auto_arrange.preset", Err: err}
		}
	}

	for key, preset := range c.Hotkeys {
		if strings.TrimSpace(key) == "" {
			return &ValidationError{Path: "hotkeys", Err: fmt.Errorf("key sequence must not be empty")}
		}
		if _, _, err := c.ResolvePreset(preset); err != nil {
			return &ValidationError{Path: "hotkeys." + key, Err: err}
		}
	}

	return nil
}

func validatePreset(name string, pc PresetConfig) error {
	path := "presets." + name

	p, err := layout.Parse(pc.Layout)
	if err != nil {
		return &ValidationError{Path: path + ".layout", Err: err}
	}

	if len(pc.RowWeights) == 0 && len(pc.ColWeights) == 0 {
		return nil
	}
	if p.Kind != layout.KindGrid {
		return &ValidationError{Path: path, Err: fmt.Errorf("weights are only valid for grid layouts")}
	}
	if len(pc.RowWeights) > 0 && len(pc.RowWeights) != p.Rows {
		return &ValidationError{Path: path + ".row_weights", Err: fmt.Errorf("need %d weights, got %d", p.Rows, len(pc.RowWeights))}
	}
	if len(pc.ColWeights) > 0 && len(pc.ColWeights) != p.Cols {
		return &ValidationError{Path: path + ".col_weights", Err: fmt.Errorf("need %d weights, got %d", p.Cols, len(pc.ColWeights))}
	}
	for _, w := range append(append([]float64{}, pc.RowWeights...), pc.ColWeights...) {
		if w <= 0 {
			return &ValidationError{Path: path, Err: fmt.Errorf("weights must be positive")}
		}
	}
	return nil
}

// ResolvePreset turns a name or raw spec string into a preset. Named presets
// from the config win over raw spec strings.
func (c *Config) ResolvePreset(name string) (layout.Preset, PresetConfig, error) {
	if pc, ok := c.Presets[name]; ok {
		p, err := layout.Parse(pc.Layout)
		return p, pc, err
	}

	p, err := layout.Parse(name)
	if err != nil {
		return layout.Preset{}, PresetConfig{}, fmt.Errorf("unknown preset %q: %w", name, err)
	}
	return p, PresetConfig{Layout: name}, nil
}

// Filter builds the window filter the config describes.
func (c *Config) Filter() arrange.Filter {
	var f arrange.Filter
	switch c.Target {
	case "terminals":
		f = arrange.TerminalFilter()
	case "custom":
		f = arrange.Filter{Processes: c.Processes, Exclude: arrange.DefaultExcludedProcesses}
	default:
		f = arrange.AllFilter()
	}
	f.Exclude = append(f.Exclude, c.Exclude...)
	return f
}

// WeightsFor resolves the grid weights of a preset config, expanding a
// partial specification (only rows or only cols) to uniform weights for the
// other axis.
func WeightsFor(p layout.Preset, pc PresetConfig) (rows, cols []float64) {
	if p.Kind != layout.KindGrid || (len(pc.RowWeights) == 0 && len(pc.ColWeights) == 0) {
		return nil, nil
	}
	rows = pc.RowWeights
	if len(rows) == 0 {
		rows = uniformWeights(p.Rows)
	}
	cols = pc.ColWeights
	if len(cols) == 0 {
		cols = uniformWeights(p.Cols)
	}
	return rows, cols
}

func uniformWeights(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 1
	}
	return w
}
