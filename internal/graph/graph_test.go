package graph

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/papapumpkin/gantry/internal/task"
)

// taskSpec is a compact task description for building test graphs.
type taskSpec struct {
	id   string
	deps []string
}

func buildTasks(specs []taskSpec) []task.Task {
	tasks := make([]task.Task, 0, len(specs))
	for _, s := range specs {
		tasks = append(tasks, task.Task{ID: s.id, Title: s.id, DependsOn: s.deps})
	}
	return tasks
}

func TestBuildEmpty(t *testing.T) {
	t.Parallel()

	g := Build(nil)
	if g.Len() != 0 {
		t.Errorf("empty build has %d nodes, want 0", g.Len())
	}
	if len(g.Edges) != 0 {
		t.Errorf("empty build has %d edges, want 0", len(g.Edges))
	}
}

func TestBuildEdges(t *testing.T) {
	t.Parallel()

	g := Build(buildTasks([]taskSpec{
		{id: "a"},
		{id: "b", deps: []string{"a"}},
		{id: "c", deps: []string{"a", "b"}},
	}))

	if g.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", g.Len())
	}
	wantEdges := []Edge{
		{From: "a", To: "b"},
		{From: "a", To: "c"},
		{From: "b", To: "c"},
	}
	if diff := cmp.Diff(wantEdges, g.Edges); diff != "" {
		t.Errorf("edges mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"b", "c"}, g.Dependents["a"]); diff != "" {
		t.Errorf("dependents of a (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"a", "b"}, g.Dependencies["c"]); diff != "" {
		t.Errorf("dependencies of c (-want +got):\n%s", diff)
	}
}

func TestBuildDropsDanglingReferences(t *testing.T) {
	t.Parallel()

	// "ghost" is not part of the collection — the task may live on
	// another page of data, so the reference is filtered, not an error.
	g := Build(buildTasks([]taskSpec{
		{id: "a", deps: []string{"ghost"}},
		{id: "b", deps: []string{"a", "ghost"}},
	}))

	wantEdges := []Edge{{From: "a", To: "b"}}
	if diff := cmp.Diff(wantEdges, g.Edges); diff != "" {
		t.Errorf("edges mismatch (-want +got):\n%s", diff)
	}
	if g.Has("ghost") {
		t.Error("graph should not contain dangling id")
	}
}

func TestBuildDeduplicatesEdges(t *testing.T) {
	t.Parallel()

	g := Build(buildTasks([]taskSpec{
		{id: "a"},
		{id: "b", deps: []string{"a", "a", "a"}},
	}))
	if len(g.Edges) != 1 {
		t.Errorf("duplicate deps produced %d edges, want 1", len(g.Edges))
	}
}

func TestBuildIgnoresDuplicateAndEmptyIDs(t *testing.T) {
	t.Parallel()

	tasks := buildTasks([]taskSpec{
		{id: "a"},
		{id: "a"},
		{id: ""},
	})
	g := Build(tasks)
	if g.Len() != 1 {
		t.Errorf("Len() = %d, want 1", g.Len())
	}
}

func TestDetectCyclesAcyclic(t *testing.T) {
	t.Parallel()

	g := Build(buildTasks([]taskSpec{
		{id: "a"},
		{id: "b", deps: []string{"a"}},
		{id: "c", deps: []string{"a"}},
		{id: "d", deps: []string{"b", "c"}},
	}))
	if cycles := DetectCycles(g); len(cycles) != 0 {
		t.Errorf("acyclic graph reported cycles: %v", cycles)
	}
}

func TestDetectCyclesTwoNode(t *testing.T) {
	t.Parallel()

	g := Build(buildTasks([]taskSpec{
		{id: "a", deps: []string{"b"}},
		{id: "b", deps: []string{"a"}},
	}))
	cycles := DetectCycles(g)
	if len(cycles) != 1 {
		t.Fatalf("got %d cycles, want 1: %v", len(cycles), cycles)
	}
	c := cycles[0]
	if len(c) != 3 || c[0] != c[len(c)-1] {
		t.Errorf("cycle %v should be a 2-node loop returning to its start", c)
	}
}

func TestDetectCyclesSelfDependency(t *testing.T) {
	t.Parallel()

	g := Build(buildTasks([]taskSpec{
		{id: "a", deps: []string{"a"}},
		{id: "b"},
	}))
	cycles := DetectCycles(g)
	if len(cycles) != 1 {
		t.Fatalf("got %d cycles, want 1: %v", len(cycles), cycles)
	}
	if diff := cmp.Diff([]string{"a", "a"}, cycles[0]); diff != "" {
		t.Errorf("self-dependency cycle (-want +got):\n%s", diff)
	}
}

func TestDetectCyclesDisjoint(t *testing.T) {
	t.Parallel()

	// Two independent loops plus an acyclic tail.
	g := Build(buildTasks([]taskSpec{
		{id: "a", deps: []string{"b"}},
		{id: "b", deps: []string{"a"}},
		{id: "x", deps: []string{"z"}},
		{id: "y", deps: []string{"x"}},
		{id: "z", deps: []string{"y"}},
		{id: "free"},
	}))
	cycles := DetectCycles(g)
	if len(cycles) != 2 {
		t.Fatalf("got %d cycles, want 2: %v", len(cycles), cycles)
	}

	cyclic := CyclicNodes(cycles)
	for _, id := range []string{"a", "b", "x", "y", "z"} {
		if !cyclic[id] {
			t.Errorf("node %s should be in a cycle", id)
		}
	}
	if cyclic["free"] {
		t.Error("node free should not be in a cycle")
	}
}

func TestDetectCyclesDoesNotFlagDiamond(t *testing.T) {
	t.Parallel()

	// A diamond has two paths to the same node but no cycle.
	g := Build(buildTasks([]taskSpec{
		{id: "a"},
		{id: "b", deps: []string{"a"}},
		{id: "c", deps: []string{"a"}},
		{id: "d", deps: []string{"b", "c"}},
	}))
	if cycles := DetectCycles(g); len(cycles) != 0 {
		t.Errorf("diamond misreported as cyclic: %v", cycles)
	}
}
