// Package project loads gantry plan files: TOML documents describing
// the task collection the engine computes over. The loader is the
// boundary where calendar strings and status labels become typed
// values; past it, the engine never parses anything.
package project

import (
	"errors"
	"fmt"
	"os"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/papapumpkin/gantry/internal/task"
)

// ErrNoPlan is returned when the plan file does not exist.
var ErrNoPlan = errors.New("plan file not found")

// dateLayout is the calendar format used by plan files.
const dateLayout = "2006-01-02"

// Manifest is the top-level [plan] table.
type Manifest struct {
	Name        string `toml:"name"`
	Description string `toml:"description"`
}

// TaskSpec is one [[task]] entry as written in the plan file.
type TaskSpec struct {
	ID        string   `toml:"id"`
	Title     string   `toml:"title"`
	Category  string   `toml:"category"`
	Start     string   `toml:"start"`
	End       string   `toml:"end"`
	Status    string   `toml:"status"`
	DependsOn []string `toml:"depends_on"`
	Milestone bool     `toml:"milestone"`
}

// Plan is a parsed plan file.
type Plan struct {
	Path     string
	Manifest Manifest
	Tasks    []task.Task
}

type planFile struct {
	Plan  Manifest   `toml:"plan"`
	Tasks []TaskSpec `toml:"task"`
}

// Load reads and parses the plan file at path.
func Load(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNoPlan, path)
		}
		return nil, fmt.Errorf("reading plan file: %w", err)
	}

	var file planFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	plan := &Plan{Path: path, Manifest: file.Plan}
	for i, spec := range file.Tasks {
		t, err := spec.toTask()
		if err != nil {
			return nil, fmt.Errorf("%s: task %d: %w", path, i+1, err)
		}
		plan.Tasks = append(plan.Tasks, t)
	}
	return plan, nil
}

// toTask converts a raw spec to the engine's task model. Dates are
// optional but must parse when present; a task with only one of the
// two dates is treated as unscheduled by the engine, so both are
// required together here to catch plan typos early.
func (s TaskSpec) toTask() (task.Task, error) {
	if s.ID == "" {
		return task.Task{}, errors.New("missing id")
	}

	t := task.Task{
		ID:        s.ID,
		Title:     s.Title,
		Category:  s.Category,
		DependsOn: s.DependsOn,
		Milestone: s.Milestone,
	}
	if t.Title == "" {
		t.Title = s.ID
	}

	status, err := parseStatus(s.Status)
	if err != nil {
		return task.Task{}, err
	}
	t.Status = status

	if (s.Start == "") != (s.End == "") {
		return task.Task{}, fmt.Errorf("task %s: start and end must be set together", s.ID)
	}
	if s.Start != "" {
		start, err := time.Parse(dateLayout, s.Start)
		if err != nil {
			return task.Task{}, fmt.Errorf("task %s: start: %w", s.ID, err)
		}
		end, err := time.Parse(dateLayout, s.End)
		if err != nil {
			return task.Task{}, fmt.Errorf("task %s: end: %w", s.ID, err)
		}
		if s.Milestone && !start.Equal(end) {
			return task.Task{}, fmt.Errorf("task %s: a milestone must have start == end", s.ID)
		}
		t.Start = &start
		t.End = &end
	}

	return t, nil
}

func parseStatus(s string) (task.Status, error) {
	switch s {
	case "":
		return task.StatusNotStarted, nil
	case string(task.StatusNotStarted), string(task.StatusInProgress),
		string(task.StatusCompleted), string(task.StatusBlocked):
		return task.Status(s), nil
	}
	return "", fmt.Errorf("unknown status %q", s)
}
