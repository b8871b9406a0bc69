package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/papapumpkin/gantry/internal/config"
	"github.com/papapumpkin/gantry/internal/engine"
	"github.com/papapumpkin/gantry/internal/telemetry"
	"github.com/papapumpkin/gantry/internal/ui"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the Gantt chart to stdout",
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

		width, _ := cmd.Flags().GetInt("width")
		color, _ := cmd.Flags().GetBool("color")
		if width <= 0 {
			width = terminalWidth()
		}

		snap := engine.Compute(tasks, opts)
		renderer := &ui.GanttRenderer{Width: width, UseColor: color}
		fmt.Fprint(os.Stdout, renderer.Render(snap))

		emitter, err := openEmitter(cfg)
		if err != nil {
			return err
		}
		defer emitter.Close()
		return emitter.Emit(telemetry.Event{
			Timestamp: time.Now().UTC(),
			Kind:      telemetry.KindRenderDone,
			Plan:      path,
			Data:      map[string]any{"tasks": len(tasks), "width": width},
		})
	},
}

func init() {
	renderCmd.Flags().String("zoom", "", "zoom mode: day, week, month, quarter")
	renderCmd.Flags().Int("width", 0, "chart width in columns (default: terminal width)")
	renderCmd.Flags().Bool("color", true, "emit ANSI colors")
	rootCmd.AddCommand(renderCmd)
}

func terminalWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}
