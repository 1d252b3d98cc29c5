package callgraph

import (
	"sort"

	"github.com/shivasurya/trackast/past"
)

// FindCycles enumerates every simple cycle in the graph. It first
// decomposes the graph into strongly connected components via Tarjan's
// algorithm, keeping only the non-trivial ones (size >= 2, or size 1 with
// a self-loop), then enumerates simple cycles within each via Johnson's
// algorithm. Each cycle is canonicalized to start at its lexicographically
// smallest FunctionId and deduplicated. Returns nil for a DAG.
func (g *Graph) FindCycles() []Cycle {
	adj := g.adjacency()

	var vertices []past.ID
	for id := range g.Nodes {
		vertices = append(vertices, id)
	}

	allowed := make(map[past.ID]bool, len(vertices))
	for _, v := range vertices {
		allowed[v] = true
	}

	sccs := tarjanSCCs(vertices, adj, allowed)

	var cycles []Cycle
	for _, scc := range sccs {
		if !isNonTrivial(scc, adj) {
			continue
		}
		cycles = append(cycles, enumerateSimpleCycles(scc, adj)...)
	}

	return dedupeCanonical(cycles)
}

func (g *Graph) adjacency() map[past.ID][]past.ID {
	adj := make(map[past.ID][]past.ID)
	for _, e := range g.Edges {
		adj[e.From] = append(adj[e.From], e.To)
	}
	return adj
}

func isNonTrivial(scc []past.ID, adj map[past.ID][]past.ID) bool {
	if len(scc) >= 2 {
		return true
	}
	if len(scc) == 1 {
		v := scc[0]
		for _, w := range adj[v] {
			if w == v {
				return true
			}
		}
	}
	return false
}

// tarjanSCCs computes the strongly connected components of the subgraph
// induced on allowed, using Tarjan's algorithm (recursive, matching the
// frontends' recursive AST-walk style rather than an explicit stack).
func tarjanSCCs(vertices []past.ID, adj map[past.ID][]past.ID, allowed map[past.ID]bool) [][]past.ID {
	sorted := append([]past.ID(nil), vertices...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	index := 0
	indices := map[past.ID]int{}
	lowlink := map[past.ID]int{}
	onStack := map[past.ID]bool{}
	var stack []past.ID
	var result [][]past.ID

	var strongConnect func(v past.ID)
	strongConnect = func(v past.ID) {
		indices[v] = index
		lowlink[v] = index
		index++
		stack = append(stack, v)
		onStack[v] = true

		for _, w := range adj[v] {
			if !allowed[w] {
				continue
			}
			if _, seen := indices[w]; !seen {
				strongConnect(w)
				if lowlink[w] < lowlink[v] {
					lowlink[v] = lowlink[w]
				}
			} else if onStack[w] {
				if indices[w] < lowlink[v] {
					lowlink[v] = indices[w]
				}
			}
		}

		if lowlink[v] == indices[v] {
			var scc []past.ID
			for {
				n := len(stack) - 1
				w := stack[n]
				stack = stack[:n]
				onStack[w] = false
				scc = append(scc, w)
				if w == v {
					break
				}
			}
			result = append(result, scc)
		}
	}

	for _, v := range sorted {
		if !allowed[v] {
			continue
		}
		if _, seen := indices[v]; !seen {
			strongConnect(v)
		}
	}

	return result
}

// enumerateSimpleCycles runs Johnson's algorithm restricted to one SCC:
// for each candidate start vertex (in increasing order), it recomputes the
// SCC of the remaining subgraph containing that vertex, then searches for
// circuits rooted there before removing it from consideration.
func enumerateSimpleCycles(scc []past.ID, adj map[past.ID][]past.ID) []Cycle {
	ordered := append([]past.ID(nil), scc...)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i] < ordered[j] })

	remaining := make(map[past.ID]bool, len(ordered))
	for _, v := range ordered {
		remaining[v] = true
	}

	var cycles []Cycle

	for _, s := range ordered {
		if !remaining[s] {
			continue
		}

		component := componentContaining(s, remaining, adj)
		if isNonTrivial(component, adj) {
			compSet := make(map[past.ID]bool, len(component))
			for _, v := range component {
				compSet[v] = true
			}
			cycles = append(cycles, circuitsFrom(s, compSet, adj)...)
		}

		delete(remaining, s)
	}

	return cycles
}

// componentContaining returns the SCC of the subgraph induced on remaining
// that contains s.
func componentContaining(s past.ID, remaining map[past.ID]bool, adj map[past.ID][]past.ID) []past.ID {
	var vertices []past.ID
	for v := range remaining {
		vertices = append(vertices, v)
	}
	sccs := tarjanSCCs(vertices, adj, remaining)
	for _, scc := range sccs {
		for _, v := range scc {
			if v == s {
				return scc
			}
		}
	}
	return []past.ID{s}
}

// circuitsFrom performs Johnson's blocked DFS rooted at s over the vertex
// set compSet, returning every simple cycle found.
func circuitsFrom(s past.ID, compSet map[past.ID]bool, adj map[past.ID][]past.ID) []Cycle {
	blocked := map[past.ID]bool{}
	blockedMap := map[past.ID]map[past.ID]bool{}
	var stack []past.ID
	var cycles []Cycle

	var unblock func(v past.ID)
	unblock = func(v past.ID) {
		blocked[v] = false
		for w := range blockedMap[v] {
			delete(blockedMap[v], w)
			if blocked[w] {
				unblock(w)
			}
		}
	}

	var circuit func(v past.ID) bool
	circuit = func(v past.ID) bool {
		found := false
		stack = append(stack, v)
		blocked[v] = true

		for _, w := range adj[v] {
			if !compSet[w] {
				continue
			}
			if w == s {
				cyc := make(Cycle, len(stack))
				copy(cyc, stack)
				cycles = append(cycles, cyc)
				found = true
			} else if !blocked[w] {
				if circuit(w) {
					found = true
				}
			}
		}

		if found {
			unblock(v)
		} else {
			for _, w := range adj[v] {
				if !compSet[w] {
					continue
				}
				if blockedMap[w] == nil {
					blockedMap[w] = map[past.ID]bool{}
				}
				blockedMap[w][v] = true
			}
		}

		stack = stack[:len(stack)-1]
		return found
	}

	circuit(s)
	return cycles
}

// dedupeCanonical rotates each cycle to start at its lexicographically
// smallest FunctionId and drops duplicates.
func dedupeCanonical(cycles []Cycle) []Cycle {
	seen := map[string]bool{}
	var out []Cycle
	for _, c := range cycles {
		canon := canonicalize(c)
		key := cycleKey(canon)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, canon)
	}
	sort.Slice(out, func(i, j int) bool { return cycleKey(out[i]) < cycleKey(out[j]) })
	return out
}

func canonicalize(c Cycle) Cycle {
	if len(c) == 0 {
		return c
	}
	minIdx := 0
	for i, id := range c {
		if id < c[minIdx] {
			minIdx = i
		}
	}
	rotated := make(Cycle, len(c))
	for i := range c {
		rotated[i] = c[(minIdx+i)%len(c)]
	}
	return rotated
}

func cycleKey(c Cycle) string {
	s := ""
	for _, id := range c {
		s += string(id) + "|"
	}
	return s
}
