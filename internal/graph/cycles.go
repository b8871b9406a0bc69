package graph

// DetectCycles finds dependency cycles using a three-color depth-first
// search over the forward edges. Each cycle is an ordered id list
// returning to its start ([a b a]; a self-dependency yields [a a]).
// Disjoint cycles are all reported, not just the first found.
//
// Cycles are advisory data, never an error: the rest of the engine
// degrades gracefully on a cyclic graph, so callers surface cycles as
// UI hints rather than failures.
func DetectCycles(g *Graph) [][]string {
	const (
		white = 0
		gray  = 1
		black = 2
	)

	color := make(map[string]int, len(g.Nodes))
	var cycles [][]string

	// path is the current DFS stack; pathPos maps an id to its index
	// on the stack so a gray revisit can be unwound in O(cycle length).
	var path []string
	pathPos := make(map[string]int)

	var dfs func(node string)
	dfs = func(node string) {
		color[node] = gray
		pathPos[node] = len(path)
		path = append(path, node)

		for _, next := range g.Dependents[node] {
			switch color[next] {
			case gray:
				start := pathPos[next]
				cycle := make([]string, 0, len(path)-start+1)
				cycle = append(cycle, path[start:]...)
				cycle = append(cycle, next)
				cycles = append(cycles, cycle)
			case white:
				dfs(next)
			}
		}

		path = path[:len(path)-1]
		delete(pathPos, node)
		color[node] = black
	}

	for _, id := range g.Nodes {
		if color[id] == white {
			dfs(id)
		}
	}

	return cycles
}

// CyclicNodes returns the set of node ids that appear in any cycle.
func CyclicNodes(cycles [][]string) map[string]bool {
	nodes := make(map[string]bool)
	for _, cycle := range cycles {
		for _, id := range cycle {
			nodes[id] = true
		}
	}
	return nodes
}
