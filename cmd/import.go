package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/gantry/internal/config"
	"github.com/papapumpkin/gantry/internal/project"
	"github.com/papapumpkin/gantry/internal/store"
	"github.com/papapumpkin/gantry/internal/telemetry"
	"github.com/papapumpkin/gantry/internal/ui"
)

// importCmd snapshots the plan file into the local task database.
var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import the plan file into the local task database",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		// Import always reads the plan file itself; falling back to
		// the store would re-import its own snapshot.
		path := planPath(cmd, cfg)
		plan, err := project.Load(path)
		if err != nil {
			return err
		}
		tasks := plan.Tasks

		ctx := cmd.Context()
		db, err := store.Open(ctx, cfg.StorePath)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := db.Replace(ctx, tasks); err != nil {
			return err
		}
		ui.New().ImportDone(cfg.StorePath, len(tasks))

		emitter, err := openEmitter(cfg)
		if err != nil {
			return err
		}
		defer emitter.Close()
		return emitter.Emit(telemetry.Event{
			Timestamp: time.Now().UTC(),
			Kind:      telemetry.KindImportDone,
			Plan:      path,
			Data:      map[string]any{"tasks": len(tasks), "store": cfg.StorePath},
		})
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}
