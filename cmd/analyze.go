package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/gantry/internal/config"
	"github.com/papapumpkin/gantry/internal/engine"
	"github.com/papapumpkin/gantry/internal/telemetry"
	"github.com/papapumpkin/gantry/internal/timeline"
	"github.com/papapumpkin/gantry/internal/ui"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Print the critical path analysis for the plan",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		path, tasks, _, err := loadPlan(cmd, cfg)
		if err != nil {
			return err
		}
		opts, err := engineOptions(cmd, cfg)
		if err != nil {
			return err
		}

		report, _ := cmd.Flags().GetString("report")
		strategy, err := ui.ReportStrategyFor(report)
		if err != nil {
			return err
		}

		snap := engine.Compute(tasks, opts)
		fmt.Fprint(os.Stdout, strategy.Render(snap))

		emitter, err := openEmitter(cfg)
		if err != nil {
			return err
		}
		defer emitter.Close()
		return emitter.Emit(telemetry.Event{
			Timestamp: time.Now().UTC(),
			Kind:      telemetry.KindComputeDone,
			Plan:      path,
			Data: map[string]any{
				"tasks":    len(tasks),
				"report":   report,
				"duration": snap.Schedule.TotalDuration,
				"cycles":   len(snap.Cycles),
			},
		})
	},
}

func init() {
	analyzeCmd.Flags().String("zoom", "", "zoom mode: day, week, month, quarter")
	analyzeCmd.Flags().String("report", "schedule", "report strategy: plan, schedule")
	rootCmd.AddCommand(analyzeCmd)
}

// engineOptions builds view options from config, letting a --zoom
// flag override the configured default.
func engineOptions(cmd *cobra.Command, cfg config.Config) (engine.Options, error) {
	zoom := cfg.DefaultZoom()
	if z, _ := cmd.Flags().GetString("zoom"); z != "" {
		parsed, err := timeline.ParseZoom(z)
		if err != nil {
			return engine.Options{}, err
		}
		zoom = parsed
	}
	return engine.Options{
		Zoom:                zoom,
		MarginDays:          cfg.Timeline.MarginDays,
		DefaultDurationDays: cfg.Schedule.DefaultDurationDays,
	}, nil
}
