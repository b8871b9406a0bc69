// This file implements the analysis report strategies. Each strategy
// produces a distinct plain-text view of the same snapshot, so the
// output stays pipeable regardless of terminal capabilities.
package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/papapumpkin/gantry/internal/engine"
)

// ReportStrategy defines how to present schedule analysis results.
// Each implementation produces a distinct view of the same underlying
// snapshot, allowing consumers to choose the output format that best
// suits their needs.
type ReportStrategy interface {
	Render(snap *engine.Snapshot) string
}

// ReportStrategyFor maps a report name to its strategy, for the CLI
// flag.
func ReportStrategyFor(name string) (ReportStrategy, error) {
	switch name {
	case "plan":
		return PlanReportStrategy{}, nil
	case "schedule":
		return ScheduleReportStrategy{}, nil
	}
	return nil, fmt.Errorf("ui: unknown report %q (want plan or schedule)", name)
}

// PlanReportStrategy renders an ordered task list showing each task
// with its dependencies. Tasks appear in topological order so the
// output doubles as a step-by-step execution plan.
type PlanReportStrategy struct{}

// Render produces a numbered execution plan with dependency
// annotations.
func (s PlanReportStrategy) Render(snap *engine.Snapshot) string {
	res := snap.Schedule
	if len(res.Order) == 0 && len(res.Unschedulable) == 0 {
		return "No tasks in plan.\n"
	}

	var b strings.Builder
	b.WriteString("# Execution Plan\n\n")
	for i, id := range res.Order {
		e := res.Schedule[id]
		fmt.Fprintf(&b, "%d. %s (%d day(s))", i+1, id, e.Duration)
		if deps := snap.Graph.Dependencies[id]; len(deps) > 0 {
			fmt.Fprintf(&b, " [depends on: %s]", strings.Join(deps, ", "))
		}
		if e.Critical {
			b.WriteString(" *")
		}
		b.WriteByte('\n')
	}

	if len(res.Unschedulable) > 0 {
		fmt.Fprintf(&b, "\nUnschedulable (on or behind a cycle): %s\n",
			strings.Join(res.Unschedulable, ", "))
	}
	for _, cycle := range snap.Cycles {
		fmt.Fprintf(&b, "  cycle: %s\n", strings.Join(cycle, " -> "))
	}
	return b.String()
}

// ScheduleReportStrategy renders the full critical-path figures: the
// per-task schedule table, the critical sequence, and the project
// duration.
type ScheduleReportStrategy struct{}

// Render produces the schedule table ordered by earliest start.
func (s ScheduleReportStrategy) Render(snap *engine.Snapshot) string {
	res := snap.Schedule

	ids := make([]string, 0, len(res.Schedule))
	for id := range res.Schedule {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := res.Schedule[ids[i]], res.Schedule[ids[j]]
		if a.EarliestStart != b.EarliestStart {
			return a.EarliestStart < b.EarliestStart
		}
		return a.TaskID < b.TaskID
	})

	var b strings.Builder
	b.WriteString("# Schedule\n\n")
	fmt.Fprintf(&b, "Project duration: %d day(s)\n\n", res.TotalDuration)
	fmt.Fprintf(&b, "  %-20s %4s %4s %4s %4s %4s %6s\n",
		"task", "dur", "es", "ef", "ls", "lf", "float")
	for _, id := range ids {
		e := res.Schedule[id]
		marker := " "
		if e.Critical {
			marker = "*"
		}
		fmt.Fprintf(&b, "%s %-20s %4d %4d %4d %4d %4d %6d\n",
			marker, e.TaskID, e.Duration,
			e.EarliestStart, e.EarliestFinish, e.LatestStart, e.LatestFinish, e.Float)
	}

	if len(res.CriticalPath) > 0 {
		fmt.Fprintf(&b, "\nCritical path: %s\n", strings.Join(res.CriticalPath, " -> "))
	}
	if len(res.Unschedulable) > 0 {
		fmt.Fprintf(&b, "Unschedulable: %s\n", strings.Join(res.Unschedulable, ", "))
	}
	for _, cycle := range snap.Cycles {
		fmt.Fprintf(&b, "  cycle: %s\n", strings.Join(cycle, " -> "))
	}
	return b.String()
}
