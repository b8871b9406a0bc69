// Package tui is the interactive Gantt viewer: a BubbleTea program
// that renders the chart, navigates rows, folds groups, changes zoom,
// and reloads the plan file when it changes on disk.
package tui

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/papapumpkin/gantry/internal/engine"
	"github.com/papapumpkin/gantry/internal/task"
	"github.com/papapumpkin/gantry/internal/telemetry"
)

// Program is an alias for tea.Program, exposed so callers don't need
// to import bubbletea directly.
type Program = tea.Program

// Options bundles the wiring for a viewer session.
type Options struct {
	// PlanName labels the status bar, usually the plan file path.
	PlanName string

	// Engine holds the view computation options (zoom, margins).
	Engine engine.Options

	// Loader re-reads the collection on reload; nil disables reload.
	Loader func() ([]task.Task, error)

	// Changes delivers plan file change notifications; nil disables
	// live reload.
	Changes <-chan struct{}

	// Emitter records viewer interactions; nil disables telemetry.
	Emitter *telemetry.Emitter
}

// NewProgram creates a BubbleTea program over the task collection.
// The program uses the alternate screen buffer.
func NewProgram(tasks []task.Task, opts Options, teaOpts ...tea.ProgramOption) *Program {
	model := NewModel(opts.PlanName, tasks, opts.Engine)
	model.Loader = opts.Loader
	model.Changes = opts.Changes
	model.Emitter = opts.Emitter

	allOpts := []tea.ProgramOption{tea.WithAltScreen()}
	allOpts = append(allOpts, teaOpts...)
	return tea.NewProgram(model, allOpts...)
}

// Run creates and runs a viewer program, blocking until it exits.
func Run(tasks []task.Task, opts Options) error {
	if _, err := NewProgram(tasks, opts).Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

// WithOutput returns a program option that directs TUI output to the
// given writer. Useful for testing.
func WithOutput(w io.Writer) tea.ProgramOption {
	return tea.WithOutput(w)
}
