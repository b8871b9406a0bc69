// Package engine is the single entry point for deriving everything
// the Gantt view needs from one task collection: the dependency
// graph, cycle report, critical-path schedule, timeline projection,
// row layout, and connector geometry. Every derivation is a pure
// function of the inputs; the engine owns no I/O and no state, and
// callers re-run Compute on every data change rather than patching
// results incrementally.
package engine

import (
	"time"

	"github.com/papapumpkin/gantry/internal/connector"
	"github.com/papapumpkin/gantry/internal/cpm"
	"github.com/papapumpkin/gantry/internal/graph"
	"github.com/papapumpkin/gantry/internal/layout"
	"github.com/papapumpkin/gantry/internal/task"
	"github.com/papapumpkin/gantry/internal/timeline"
)

// Options carries the caller-owned view state and tuning knobs for
// one computation. The zero value is usable: all groups expanded,
// day zoom, default margins, one-day nominal duration, wall-clock
// today.
type Options struct {
	// Zoom selects timeline granularity.
	Zoom timeline.Zoom

	// Expanded is the set of group ids whose member rows are shown.
	// nil means every group is expanded.
	Expanded map[string]bool

	// MarginDays pads the derived range on both sides. Values below
	// one fall back to the timeline default.
	MarginDays int

	// DefaultDurationDays is the nominal duration for tasks without
	// dates, so scheduling stays total. Values below one mean one.
	DefaultDurationDays int

	// Today overrides the today-marker date, mainly for tests. Zero
	// means the current wall-clock day.
	Today time.Time
}

// Snapshot bundles the derived structures for one task collection.
// It is recomputed fresh per call and never persisted.
type Snapshot struct {
	Tasks      []task.Task
	Graph      *graph.Graph
	Cycles     [][]string
	Schedule   *cpm.Result
	Range      timeline.Range
	Projection timeline.Projection
	Rows       *layout.Rows
	Connectors []connector.Connector
	Today      time.Time
}

// Compute derives a full Snapshot. Cycles are advisory data: a cyclic
// collection still yields a schedule over the acyclic remainder, a
// layout, and connectors, so the rest of the chart renders.
func Compute(tasks []task.Task, opts Options) *Snapshot {
	today := opts.Today
	if today.IsZero() {
		today = time.Now().UTC()
	}
	expanded := opts.Expanded
	if expanded == nil {
		expanded = layout.ExpandAll(tasks)
	}

	g := graph.Build(tasks)
	r := timeline.NewRange(tasks, opts.MarginDays, today)
	p := timeline.NewProjection(r, opts.Zoom)
	rows := layout.Compute(tasks, expanded)

	return &Snapshot{
		Tasks:      tasks,
		Graph:      g,
		Cycles:     graph.DetectCycles(g),
		Schedule:   cpm.Compute(g, tasks, opts.DefaultDurationDays),
		Range:      r,
		Projection: p,
		Rows:       rows,
		Connectors: connector.Route(g, rows, p, tasks),
		Today:      today,
	}
}

// HasCycles reports whether the collection contains any dependency
// cycle.
func (s *Snapshot) HasCycles() bool {
	return len(s.Cycles) > 0
}

// CriticalSet returns the ids on the critical path as a set, for
// renderers that highlight critical bars.
func (s *Snapshot) CriticalSet() map[string]bool {
	set := make(map[string]bool, len(s.Schedule.CriticalPath))
	for _, id := range s.Schedule.CriticalPath {
		set[id] = true
	}
	return set
}

// Task returns the task with the given id, or nil.
func (s *Snapshot) Task(id string) *task.Task {
	for i := range s.Tasks {
		if s.Tasks[i].ID == id {
			return &s.Tasks[i]
		}
	}
	return nil
}
