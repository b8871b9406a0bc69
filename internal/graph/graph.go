// Package graph builds the directed dependency graph over a task
// collection and detects cycles in it. The graph is a derived,
// immutable value: it is rebuilt in full from the flat task list on
// every input change rather than mutated incrementally.
package graph

import (
	"sort"

	"github.com/papapumpkin/gantry/internal/task"
)

// Edge is a directed dependency pair: From must complete before To.
type Edge struct {
	From string
	To   string
}

// Graph is an adjacency representation of task dependencies. Edges
// reference only ids present in Nodes; dependency references pointing
// outside the collection are dropped during Build, because the caller
// may legitimately pass a filtered page of a larger task set.
type Graph struct {
	// Nodes lists task ids in input order.
	Nodes []string

	// Edges lists every in-graph dependency pair, deduplicated.
	Edges []Edge

	// Dependents maps a task id to the ids that depend on it
	// (forward along Edges). Lists are sorted for determinism.
	Dependents map[string][]string

	// Dependencies maps a task id to its in-graph dependency ids.
	Dependencies map[string][]string

	present map[string]bool
}

// Build constructs a Graph from the task collection. Pure, O(n + e).
// There are no error conditions: unresolvable dependency ids are
// silently filtered rather than surfaced. A task depending on itself
// produces a self-edge, which DetectCycles reports as a length-1 cycle.
func Build(tasks []task.Task) *Graph {
	g := &Graph{
		Nodes:        make([]string, 0, len(tasks)),
		Dependents:   make(map[string][]string, len(tasks)),
		Dependencies: make(map[string][]string, len(tasks)),
	}

	present := make(map[string]bool, len(tasks))
	g.present = present
	for i := range tasks {
		id := tasks[i].ID
		if id == "" || present[id] {
			continue
		}
		present[id] = true
		g.Nodes = append(g.Nodes, id)
	}

	seen := make(map[Edge]bool)
	for i := range tasks {
		t := &tasks[i]
		if !present[t.ID] {
			continue
		}
		for _, dep := range t.DependsOn {
			if !present[dep] {
				continue
			}
			e := Edge{From: dep, To: t.ID}
			if seen[e] {
				continue
			}
			seen[e] = true
			g.Edges = append(g.Edges, e)
			g.Dependents[dep] = append(g.Dependents[dep], t.ID)
			g.Dependencies[t.ID] = append(g.Dependencies[t.ID], dep)
		}
	}

	// Sorted adjacency keeps traversal order independent of input
	// dependency ordering.
	for id := range g.Dependents {
		sort.Strings(g.Dependents[id])
	}
	for id := range g.Dependencies {
		sort.Strings(g.Dependencies[id])
	}

	return g
}

// Has reports whether the graph contains the given task id.
func (g *Graph) Has(id string) bool {
	return g.present[id]
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.Nodes)
}
