// Package task defines the task model consumed by the planning engine.
// Tasks are externally owned input: the engine reads them and derives
// graphs, schedules, and geometry, but never mutates or persists them.
package task

import "time"

// Status is the lifecycle state of a task. The engine only distinguishes
// completed from not-completed (for connector styling); the full label set
// belongs to the task-management layer.
type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusBlocked    Status = "blocked"
)

// DefaultCategory is the grouping key assigned to tasks with an empty
// category, so uncategorized tasks still occupy a group row.
const DefaultCategory = "general"

// Task is a single unit of work on the plan. Start and End are optional;
// a task with neither is "unscheduled" and receives a nominal duration
// during critical-path analysis. A milestone has zero duration.
type Task struct {
	ID        string
	Title     string
	Category  string
	Start     *time.Time
	End       *time.Time
	Status    Status
	DependsOn []string
	Milestone bool
}

// Scheduled reports whether the task has both calendar dates.
func (t *Task) Scheduled() bool {
	return t.Start != nil && t.End != nil
}

// Completed reports whether the task is done. Connectors out of a
// completed task render as satisfied.
func (t *Task) Completed() bool {
	return t.Status == StatusCompleted
}

// Group returns the grouping key for row layout, substituting
// DefaultCategory when the task has no category.
func (t *Task) Group() string {
	if t.Category == "" {
		return DefaultCategory
	}
	return t.Category
}

// DurationDays returns the task's duration in whole days. Spans are
// rounded up, with a minimum of one day for any dated task. Milestones
// are zero-length points in time. Unscheduled tasks fall back to
// defaultDays so scheduling stays total over the whole collection.
func (t *Task) DurationDays(defaultDays int) int {
	if t.Milestone {
		return 0
	}
	if !t.Scheduled() {
		if defaultDays < 1 {
			return 1
		}
		return defaultDays
	}
	span := t.End.Sub(*t.Start)
	if span <= 0 {
		return 1
	}
	days := int(span / (24 * time.Hour))
	if span%(24*time.Hour) != 0 {
		days++
	}
	if days < 1 {
		days = 1
	}
	return days
}
