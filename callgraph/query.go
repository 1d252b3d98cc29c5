package callgraph

import (
	"github.com/shivasurya/trackast/past"
	"github.com/shivasurya/trackast/trackerr"
)

// ReachableFrom runs a DFS from id following outgoing edges, returning
// every reached FunctionId including id itself. A visited-set guard
// handles cycles. Returns a trackerr.UnknownFunction if id is not a node.
func (g *Graph) ReachableFrom(id past.ID) ([]past.ID, error) {
	if _, ok := g.Nodes[id]; !ok {
		return nil, &trackerr.UnknownFunction{ID: string(id)}
	}

	visited := map[past.ID]bool{}
	order := []past.ID{}

	var stack []past.ID
	stack = append(stack, id)

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if visited[cur] {
			continue
		}
		visited[cur] = true
		order = append(order, cur)

		for _, callee := range g.directCalleesOf(cur) {
			if !visited[callee] {
				stack = append(stack, callee)
			}
		}
	}

	return order, nil
}

// DirectCallees returns the FunctionIds that are the `to` endpoint of some
// edge from id, deduplicated, in first-appearance order.
func (g *Graph) DirectCallees(id past.ID) []past.ID {
	return g.directCalleesOf(id)
}

func (g *Graph) directCalleesOf(id past.ID) []past.ID {
	seen := map[past.ID]bool{}
	var out []past.ID
	for _, e := range g.Edges {
		if e.From != id {
			continue
		}
		if seen[e.To] {
			continue
		}
		seen[e.To] = true
		out = append(out, e.To)
	}
	return out
}

// DirectCallers returns the FunctionIds that are the `from` endpoint of
// some edge whose `to` is id, deduplicated, in first-appearance order.
func (g *Graph) DirectCallers(id past.ID) []past.ID {
	seen := map[past.ID]bool{}
	var out []past.ID
	for _, e := range g.Edges {
		if e.To != id {
			continue
		}
		if seen[e.From] {
			continue
		}
		seen[e.From] = true
		out = append(out, e.From)
	}
	return out
}

// ExternalCalls returns every edge whose `to` endpoint is an external node.
func (g *Graph) ExternalCalls() []Edge {
	var out []Edge
	for _, e := range g.Edges {
		if n, ok := g.Nodes[e.To]; ok && n.IsExternal {
			out = append(out, e)
		}
	}
	return out
}

// HasCycles reports whether FindCycles is non-empty.
func (g *Graph) HasCycles() bool {
	return len(g.FindCycles()) > 0
}
