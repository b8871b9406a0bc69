// Package config loads runtime configuration for gantry sessions.
// Values are populated from .gantry.yaml, GANTRY_* env vars, and CLI
// flags, merged through viper with built-in defaults.
package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/papapumpkin/gantry/internal/timeline"
)

// TimelineConfig tunes range derivation and the default chart view.
type TimelineConfig struct {
	MarginDays int    `mapstructure:"margin_days"`
	Zoom       string `mapstructure:"zoom"`
}

// ScheduleConfig tunes critical-path analysis.
type ScheduleConfig struct {
	DefaultDurationDays int `mapstructure:"default_duration_days"`
}

// Config holds all runtime configuration for a gantry session.
type Config struct {
	PlanPath      string         `mapstructure:"plan_path"`
	StorePath     string         `mapstructure:"store_path"`
	TelemetryPath string         `mapstructure:"telemetry_path"`
	Verbose       bool           `mapstructure:"verbose"`
	Timeline      TimelineConfig `mapstructure:"timeline"`
	Schedule      ScheduleConfig `mapstructure:"schedule"`
}

// Load reads configuration from viper, applying built-in defaults for
// any values not set by config file, environment, or flags. The zoom
// name is validated here so bad config fails at startup, not at
// render time.
func Load() (Config, error) {
	viper.SetDefault("plan_path", "gantry.toml")
	viper.SetDefault("store_path", ".gantry/tasks.db")
	viper.SetDefault("telemetry_path", "")
	viper.SetDefault("verbose", false)
	viper.SetDefault("timeline.margin_days", 2)
	viper.SetDefault("timeline.zoom", "week")
	viper.SetDefault("schedule.default_duration_days", 1)

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	if _, err := timeline.ParseZoom(cfg.Timeline.Zoom); err != nil {
		return Config{}, fmt.Errorf("config: timeline.zoom: %w", err)
	}
	return cfg, nil
}

// DefaultZoom returns the configured zoom mode. Load has already
// validated the name, so parse failures cannot occur here.
func (c Config) DefaultZoom() timeline.Zoom {
	z, _ := timeline.ParseZoom(c.Timeline.Zoom)
	return z
}
