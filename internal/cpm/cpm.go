// Package cpm implements critical path method analysis over a task
// dependency graph: earliest/latest start and finish, per-task float,
// and the critical path itself. Durations are measured in whole days.
package cpm

import (
	"sort"

	"github.com/papapumpkin/gantry/internal/graph"
	"github.com/papapumpkin/gantry/internal/task"
)

// Entry is the computed schedule for a single task. Float is
// LatestStart − EarliestStart; zero float marks a critical task.
type Entry struct {
	TaskID         string
	Duration       int
	EarliestStart  int
	EarliestFinish int
	LatestStart    int
	LatestFinish   int
	Float          int
	Critical       bool
}

// Result holds the complete analysis for one task collection.
// Computed fresh per invocation and never persisted.
type Result struct {
	// Schedule maps task id to its schedule entry. Tasks that cannot
	// be ordered (cycle members and their downstream dependents) have
	// no entry; they are listed in Unschedulable instead.
	Schedule map[string]*Entry

	// CriticalPath is the longest dependency chain by total duration,
	// in dependency-first order.
	CriticalPath []string

	// TotalDuration is the maximum EarliestFinish across all
	// schedulable tasks: the minimum possible project length.
	TotalDuration int

	// Order is the topological order used for the passes.
	Order []string

	// Unschedulable lists task ids excluded from the ordering because
	// they sit on or behind a dependency cycle, sorted by id.
	Unschedulable []string
}

// Compute runs the forward and backward passes over the graph and
// reconstructs the critical path. A cyclic graph is not an error:
// cycle members are excluded and reported via Unschedulable, and the
// analysis covers the acyclic remainder.
func Compute(g *graph.Graph, tasks []task.Task, defaultDays int) *Result {
	order, unschedulable := topoOrder(g)

	byID := make(map[string]*task.Task, len(tasks))
	for i := range tasks {
		byID[tasks[i].ID] = &tasks[i]
	}

	res := &Result{
		Schedule:      make(map[string]*Entry, len(order)),
		Order:         order,
		Unschedulable: unschedulable,
	}

	for _, id := range order {
		dur := 0
		if t := byID[id]; t != nil {
			dur = t.DurationDays(defaultDays)
		}
		res.Schedule[id] = &Entry{TaskID: id, Duration: dur}
	}

	// Forward pass: earliest start is the max earliest finish over all
	// in-graph dependencies, zero for tasks with none.
	for _, id := range order {
		e := res.Schedule[id]
		for _, dep := range g.Dependencies[id] {
			if d, ok := res.Schedule[dep]; ok && d.EarliestFinish > e.EarliestStart {
				e.EarliestStart = d.EarliestFinish
			}
		}
		e.EarliestFinish = e.EarliestStart + e.Duration
		if e.EarliestFinish > res.TotalDuration {
			res.TotalDuration = e.EarliestFinish
		}
	}

	// Backward pass in reverse topological order: latest finish is the
	// min latest start over schedulable dependents, defaulting to the
	// overall project finish for tasks nothing depends on.
	for i := len(order) - 1; i >= 0; i-- {
		id := order[i]
		e := res.Schedule[id]
		lf := res.TotalDuration
		bounded := false
		for _, dep := range g.Dependents[id] {
			if d, ok := res.Schedule[dep]; ok {
				if !bounded || d.LatestStart < lf {
					lf = d.LatestStart
					bounded = true
				}
			}
		}
		e.LatestFinish = lf
		e.LatestStart = lf - e.Duration
		e.Float = e.LatestStart - e.EarliestStart
		e.Critical = e.Float == 0
	}

	res.CriticalPath = reconstructPath(g, res)
	return res
}

// topoOrder runs Kahn's algorithm with id-sorted tie-breaking. Nodes
// that never reach zero in-degree (cycle members and everything
// downstream of them) are returned separately.
func topoOrder(g *graph.Graph) (order, unschedulable []string) {
	inDegree := make(map[string]int, len(g.Nodes))
	for _, id := range g.Nodes {
		inDegree[id] = len(g.Dependencies[id])
	}

	var queue []string
	for _, id := range g.Nodes {
		if inDegree[id] == 0 {
			queue = append(queue, id)
		}
	}
	sort.Strings(queue)

	ordered := make(map[string]bool, len(g.Nodes))
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		order = append(order, id)
		ordered[id] = true

		var freed []string
		for _, dep := range g.Dependents[id] {
			inDegree[dep]--
			if inDegree[dep] == 0 {
				freed = append(freed, dep)
			}
		}
		sort.Strings(freed)
		queue = append(queue, freed...)
	}

	for _, id := range g.Nodes {
		if !ordered[id] {
			unschedulable = append(unschedulable, id)
		}
	}
	sort.Strings(unschedulable)
	return order, unschedulable
}

// reconstructPath walks backward from the zero-float sink with the
// largest earliest finish, following zero-float dependencies. At each
// step the predecessor that actually constrains the task wins: the
// zero-float dependency with the largest earliest finish, ties broken
// by id so the path is reproducible.
func reconstructPath(g *graph.Graph, res *Result) []string {
	var end *Entry
	for _, id := range res.Order {
		e := res.Schedule[id]
		if !e.Critical {
			continue
		}
		if hasScheduledDependent(g, res, id) {
			continue
		}
		if end == nil || betterEnd(e, end) {
			end = e
		}
	}
	if end == nil {
		return nil
	}

	var path []string
	for cur := end; cur != nil; {
		path = append(path, cur.TaskID)
		var next *Entry
		for _, dep := range g.Dependencies[cur.TaskID] {
			d, ok := res.Schedule[dep]
			if !ok || !d.Critical {
				continue
			}
			if next == nil ||
				d.EarliestFinish > next.EarliestFinish ||
				(d.EarliestFinish == next.EarliestFinish && d.TaskID < next.TaskID) {
				next = d
			}
		}
		cur = next
	}

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

func hasScheduledDependent(g *graph.Graph, res *Result, id string) bool {
	for _, dep := range g.Dependents[id] {
		if _, ok := res.Schedule[dep]; ok {
			return true
		}
	}
	return false
}

// betterEnd orders candidate path endpoints: larger earliest finish
// first, then earlier earliest start, then id.
func betterEnd(a, b *Entry) bool {
	if a.EarliestFinish != b.EarliestFinish {
		return a.EarliestFinish > b.EarliestFinish
	}
	if a.EarliestStart != b.EarliestStart {
		return a.EarliestStart < b.EarliestStart
	}
	return a.TaskID < b.TaskID
}
