package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/gantry/internal/config"
	"github.com/papapumpkin/gantry/internal/graph"
	"github.com/papapumpkin/gantry/internal/ui"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the plan file for parse errors and dependency cycles",
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

		cycles := graph.DetectCycles(graph.Build(tasks))
		ui.New().ValidateResult(path, len(tasks), cycles)
		if len(cycles) > 0 {
			os.Exit(1)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
