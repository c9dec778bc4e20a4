package config

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/proton/internal/errors"
)

const (
	// JSONFileName is the JSON configuration file name.
	JSONFileName = "proton.json"

	// YAMLFileName is the YAML configuration file name.
	YAMLFileName = "proton.yaml"

	// DefaultInspectorAddr is the default inspector listen address.
	DefaultInspectorAddr = "localhost:7070"

	// DefaultInterval is the default delay between workload updates.
	DefaultInterval = "250ms"
)

// Config represents the complete proton configuration.
type Config struct {
	// Log configures the CLI's slog handler.
	Log LogConfig `json:"log" yaml:"log"`

	// Metrics configures the Prometheus observer.
	Metrics MetricsConfig `json:"metrics" yaml:"metrics"`

	// Inspector configures the inspector HTTP server.
	Inspector InspectorConfig `json:"inspector" yaml:"inspector"`

	// Workload sizes the synthetic graph used by bench, demo and inspect.
	Workload WorkloadConfig `json:"workload" yaml:"workload"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error (default: info).
	Level string `json:"level,omitempty" yaml:"level,omitempty"`

	// Format is text or json (default: text).
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
}

// MetricsConfig contains Prometheus naming settings.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "proton").
	Namespace string `json:"namespace,omitempty" yaml:"namespace,omitempty"`

	// Subsystem is the metrics subsystem (default: "reactive").
	Subsystem string `json:"subsystem,omitempty" yaml:"subsystem,omitempty"`
}

// InspectorConfig contains inspector server settings.
type InspectorConfig struct {
	// Addr is the listen address.
	Addr string `json:"addr,omitempty" yaml:"addr,omitempty"`

	// Buffer is the per-subscriber event buffer.
	Buffer int `json:"buffer,omitempty" yaml:"buffer,omitempty"`
}

// WorkloadConfig contains synthetic workload settings.
type WorkloadConfig struct {
	// Signals is the number of source signals.
	Signals int `json:"signals,omitempty" yaml:"signals,omitempty"`

	// Memos is the number of derived memos.
	Memos int `json:"memos,omitempty" yaml:"memos,omitempty"`

	// Effects is the number of leaf effects.
	Effects int `json:"effects,omitempty" yaml:"effects,omitempty"`

	// Updates is the number of signal writes per run.
	Updates int `json:"updates,omitempty" yaml:"updates,omitempty"`

	// Interval is the delay between updates in inspect mode (e.g., "250ms").
	Interval string `json:"interval,omitempty" yaml:"interval,omitempty"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Metrics: MetricsConfig{
			Namespace: "proton",
			Subsystem: "reactive",
		},
		Inspector: InspectorConfig{
			Addr:   DefaultInspectorAddr,
			Buffer: 256,
		},
		Workload: WorkloadConfig{
			Signals:  16,
			Memos:    32,
			Effects:  64,
			Updates:  10000,
			Interval: DefaultInterval,
		},
	}
}

// Load reads configuration from the specified directory.
// It looks for proton.json, then proton.yaml, and returns the defaults
// when neither exists.
func Load(dir string) (*Config, error) {
	for _, name := range []string{JSONFileName, YAMLFileName} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}
	return Default(), nil
}

// LoadFile reads configuration from the specified file path. Files ending
// in .yaml or .yml are parsed as YAML, everything else as JSON.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("C001").
			WithDetail("Cannot read " + path).
			Wrap(err)
	}

	cfg := Default()
	if isYAML(path) {
		err = yaml.Unmarshal(data, cfg)
	} else {
		err = json.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, errors.New("C001").
			WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
			WithSuggestion("Check that " + filepath.Base(path) + " is valid " + formatName(path))
	}

	cfg.configPath = path
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveTo writes the configuration to path, as YAML or JSON depending on the
// extension.
func (c *Config) SaveTo(path string) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return errors.New("C001").Wrap(err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("C001").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from, or "" for
// defaults.
func (c *Config) Path() string {
	return c.configPath
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	d := Default()

	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
	if c.Log.Format == "" {
		c.Log.Format = d.Log.Format
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = d.Metrics.Namespace
	}
	if c.Inspector.Addr == "" {
		c.Inspector.Addr = d.Inspector.Addr
	}
	if c.Inspector.Buffer == 0 {
		c.Inspector.Buffer = d.Inspector.Buffer
	}
	if c.Workload.Interval == "" {
		c.Workload.Interval = d.Workload.Interval
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if _, err := c.SlogLevel(); err != nil {
		return invalid("log.level", "must be one of debug, info, warn, error")
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return invalid("log.format", "must be text or json")
	}
	if c.Inspector.Buffer < 1 {
		return invalid("inspector.buffer", "must be at least 1")
	}

	w := c.Workload
	if w.Signals < 1 {
		return invalid("workload.signals", "must be at least 1")
	}
	if w.Memos < 0 || w.Effects < 0 || w.Updates < 0 {
		return invalid("workload", "memos, effects and updates must not be negative")
	}
	if d, err := c.IntervalDuration(); err != nil || d <= 0 {
		return invalid("workload.interval", "must be a positive duration such as 250ms")
	}
	return nil
}

func invalid(field, detail string) *errors.Error {
	return errors.New("C002").
		WithDetail(field + " " + detail)
}

// SlogLevel parses Log.Level.
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	err := level.UnmarshalText([]byte(c.Log.Level))
	return level, err
}

// IntervalDuration parses Workload.Interval.
func (c *Config) IntervalDuration() (time.Duration, error) {
	return time.ParseDuration(c.Workload.Interval)
}

// Exists reports whether a config file exists in the given directory.
func Exists(dir string) bool {
	for _, name := range []string{JSONFileName, YAMLFileName} {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return true
		}
	}
	return false
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

func formatName(path string) string {
	if isYAML(path) {
		return "YAML"
	}
	return "JSON"
}
