package config

import (
	"os"
	"testing"

	"github.com/spf13/viper"
)

// resetViper clears all viper state between tests to avoid cross-contamination.
func resetViper() {
	viper.Reset()
}

func TestLoad_Defaults(t *testing.T) {
	resetViper()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"PlanPath", cfg.PlanPath, "gantry.toml"},
		{"StorePath", cfg.StorePath, ".gantry/tasks.db"},
		{"TelemetryPath", cfg.TelemetryPath, ""},
		{"Verbose", cfg.Verbose, false},
		{"Timeline.MarginDays", cfg.Timeline.MarginDays, 2},
		{"Timeline.Zoom", cfg.Timeline.Zoom, "week"},
		{"Schedule.DefaultDurationDays", cfg.Schedule.DefaultDurationDays, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
			}
		})
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	tests := []struct {
		name   string
		envKey string
		envVal string
		field  func(Config) any
		want   any
	}{
		{
			name:   "plan_path",
			envKey: "GANTRY_PLAN_PATH",
			envVal: "/tmp/plan.toml",
			field:  func(c Config) any { return c.PlanPath },
			want:   "/tmp/plan.toml",
		},
		{
			name:   "store_path",
			envKey: "GANTRY_STORE_PATH",
			envVal: "/var/lib/gantry.db",
			field:  func(c Config) any { return c.StorePath },
			want:   "/var/lib/gantry.db",
		},
		{
			name:   "verbose",
			envKey: "GANTRY_VERBOSE",
			envVal: "true",
			field:  func(c Config) any { return c.Verbose },
			want:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetViper()
			viper.SetEnvPrefix("GANTRY")
			viper.AutomaticEnv()

			os.Setenv(tt.envKey, tt.envVal)
			defer os.Unsetenv(tt.envKey)

			cfg, err := Load()
			if err != nil {
				t.Fatalf("Load() returned unexpected error: %v", err)
			}
			got := tt.field(cfg)
			if got != tt.want {
				t.Errorf("%s: got %v (%T), want %v (%T)", tt.name, got, got, tt.want, tt.want)
			}
		})
	}
}

func TestLoad_RejectsUnknownZoom(t *testing.T) {
	resetViper()
	defer resetViper()

	viper.Set("timeline.zoom", "fortnight")
	if _, err := Load(); err == nil {
		t.Error("Load() should reject an unknown zoom mode")
	}
}

func TestDefaultZoom(t *testing.T) {
	resetViper()
	defer resetViper()

	viper.Set("timeline.zoom", "month")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if cfg.DefaultZoom().String() != "month" {
		t.Errorf("DefaultZoom() = %v, want month", cfg.DefaultZoom())
	}
}
