package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/gantry/internal/config"
	"github.com/papapumpkin/gantry/internal/project"
	"github.com/papapumpkin/gantry/internal/task"
	"github.com/papapumpkin/gantry/internal/telemetry"
	"github.com/papapumpkin/gantry/internal/tui"
)

// tuiCmd launches the interactive Gantt viewer with live reload.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive Gantt viewer",
	Long: `Launch the interactive viewer for the plan file. The chart reloads
automatically when the plan file changes on disk. Arrow keys move the
selection, enter folds a group, +/- change zoom, q quits.`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().String("zoom", "", "zoom mode: day, week, month, quarter")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	path, tasks, fromStore, err := loadPlan(cmd, cfg)
	if err != nil {
		return err
	}
	opts, err := engineOptions(cmd, cfg)
	if err != nil {
		return err
	}

	emitter, err := openEmitter(cfg)
	if err != nil {
		return err
	}
	defer emitter.Close()
	_ = emitter.Emit(telemetry.Event{
		Timestamp: time.Now().UTC(),
		Kind:      telemetry.KindPlanLoaded,
		Plan:      path,
		Data:      map[string]any{"tasks": len(tasks)},
	})

	// A store-backed session has no plan file to watch or re-read;
	// reload keys re-read the store snapshot instead.
	if fromStore {
		return tui.Run(tasks, tui.Options{
			PlanName: path,
			Engine:   opts,
			Loader:   func() ([]task.Task, error) { return storeTasks(cfg) },
			Emitter:  emitter,
		})
	}

	watcher, err := project.NewWatcher(path)
	if err != nil {
		return fmt.Errorf("failed to watch plan file: %w", err)
	}
	if err := watcher.Start(); err != nil {
		return fmt.Errorf("failed to watch plan file: %w", err)
	}
	defer watcher.Stop()

	// Bridge the watcher's typed channel to the viewer's signal
	// channel.
	changes := make(chan struct{}, 1)
	go func() {
		for range watcher.Changes {
			select {
			case changes <- struct{}{}:
			default:
			}
		}
		close(changes)
	}()

	return tui.Run(tasks, tui.Options{
		PlanName: path,
		Engine:   opts,
		Loader: func() ([]task.Task, error) {
			plan, err := project.Load(path)
			if err != nil {
				return nil, err
			}
			return plan.Tasks, nil
		},
		Changes: changes,
		Emitter: emitter,
	})
}
