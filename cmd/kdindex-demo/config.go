package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the demo configuration, loaded from YAML and overridden by flags.
type Config struct {
	Points      int        `yaml:"points"`
	MaxRange    float64    `yaml:"max_range"`
	LeafSize    int        `yaml:"leaf_size"`
	K           int        `yaml:"k"`
	Seed        uint64     `yaml:"seed"` // 0 picks a time-based seed
	Query       [3]float64 `yaml:"query"`
	Formats     []string   `yaml:"formats"`
	LogLevel    string     `yaml:"log_level"`
	LogFormat   string     `yaml:"log_format"`
	MetricsAddr string     `yaml:"metrics_addr"`
}

var knownFormats = map[string]bool{"float32": true, "float64": true, "float16": true, "r3": true}

func defaultConfig() Config {
	return Config{
		Points:    1_000_000,
		MaxRange:  1.0,
		LeafSize:  10,
		K:         1,
		Query:     [3]float64{0.5, 0.5, 0.5},
		Formats:   []string{"float32", "float64"},
		LogLevel:  "info",
		LogFormat: "text",
	}
}

// loadConfig reads path over the defaults; keys absent from the file keep
// their default values.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Points < 0 {
		return fmt.Errorf("points must be >= 0, got %d", c.Points)
	}
	if c.MaxRange <= 0 {
		return fmt.Errorf("max_range must be > 0, got %g", c.MaxRange)
	}
	if c.LeafSize < 1 {
		return fmt.Errorf("leaf_size must be >= 1, got %d", c.LeafSize)
	}
	if c.K < 1 {
		return fmt.Errorf("k must be >= 1, got %d", c.K)
	}
	if len(c.Formats) == 0 {
		return fmt.Errorf("formats must not be empty")
	}
	for _, f := range c.Formats {
		if !knownFormats[f] {
			return fmt.Errorf("unknown format %q", f)
		}
	}
	if _, err := c.slogLevel(); err != nil {
		return err
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("log_format must be \"text\" or \"json\", got %q", c.LogFormat)
	}
	return nil
}

func (c Config) slogLevel() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToUpper(c.LogLevel))); err != nil {
		return 0, fmt.Errorf("log_level: %w", err)
	}
	return l, nil
}
