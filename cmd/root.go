package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/papapumpkin/gantry/internal/config"
	"github.com/papapumpkin/gantry/internal/project"
	"github.com/papapumpkin/gantry/internal/store"
	"github.com/papapumpkin/gantry/internal/task"
	"github.com/papapumpkin/gantry/internal/telemetry"
)

var rootCmd = &cobra.Command{
	Use:   "gantry",
	Short: "Dependency-aware project timeline viewer",
	Long: `Gantry turns a TOML task plan into a Gantt timeline: it builds the
dependency graph, reports cycles, computes the critical path, and renders
the chart in the terminal or as an interactive viewer.`,
	RunE: runRootDefault,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default .gantry.yaml)")
	rootCmd.PersistentFlags().String("plan", "", "plan file (default gantry.toml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
}

func initConfig() {
	if cfgFile, _ := rootCmd.Flags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".gantry")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
	}

	viper.SetEnvPrefix("GANTRY")
	viper.AutomaticEnv()

	// It's fine if no config file is found; we use defaults.
	_ = viper.ReadInConfig()
}

// runRootDefault launches the TUI when a plan source exists (the plan
// file, or an imported store snapshot), and falls back to help
// otherwise.
func runRootDefault(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if _, err := os.Stat(planPath(cmd, cfg)); os.IsNotExist(err) {
		if _, serr := os.Stat(cfg.StorePath); serr != nil {
			return cmd.Help()
		}
	}
	return runTUI(cmd, nil)
}

// planPath resolves the plan file: the --plan flag wins over config.
// The flag is persistent on the root command, so it is read there
// regardless of which subcommand is running.
func planPath(cmd *cobra.Command, cfg config.Config) string {
	if p, _ := cmd.Root().PersistentFlags().GetString("plan"); p != "" {
		return p
	}
	return cfg.PlanPath
}

// loadPlan resolves the task collection for the read surfaces: the
// plan file when it exists, otherwise the previously imported store
// snapshot. fromStore reports which source won, so callers that only
// make sense against a live plan file (watching, re-import) can tell.
func loadPlan(cmd *cobra.Command, cfg config.Config) (source string, tasks []task.Task, fromStore bool, err error) {
	path := planPath(cmd, cfg)
	plan, err := project.Load(path)
	if err == nil {
		return path, plan.Tasks, false, nil
	}
	if !errors.Is(err, project.ErrNoPlan) {
		return path, nil, false, err
	}

	tasks, serr := storeTasks(cfg)
	if serr != nil || len(tasks) == 0 {
		// No usable store snapshot either; the missing plan is the
		// error worth reporting.
		return path, nil, false, err
	}
	return cfg.StorePath, tasks, true, nil
}

// storeTasks reads the imported snapshot. A store file that was never
// created is not an error here; it just means there is no fallback.
func storeTasks(cfg config.Config) ([]task.Task, error) {
	if _, err := os.Stat(cfg.StorePath); err != nil {
		return nil, err
	}
	ctx := context.Background()
	db, err := store.Open(ctx, cfg.StorePath)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	return db.Tasks(ctx)
}

// openEmitter opens the configured telemetry stream, or returns a
// nil no-op emitter when telemetry is disabled.
func openEmitter(cfg config.Config) (*telemetry.Emitter, error) {
	if cfg.TelemetryPath == "" {
		return nil, nil
	}
	return telemetry.NewEmitter(cfg.TelemetryPath)
}
