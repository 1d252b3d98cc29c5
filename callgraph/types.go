// Package callgraph converts a merged AbstractAST into a resolved call
// graph and provides the traversal/query/cycle engine over it. Grounded on
// the teacher's graph/callgraph.BuildCallGraph three-phase structure
// (index functions, extract call sites, resolve and edge), generalized
// from Python-only FQN resolution to the spec's module-hierarchy walk with
// a deterministic tie-break.
package callgraph

import "github.com/shivasurya/trackast/past"

// Node is a function definition's place in the graph: its FunctionId, a
// flag marking it external (synthesized, unresolved), and the FunctionDef
// it originated from (zero value for external nodes).
type Node struct {
	ID         past.ID
	IsExternal bool
	Def        past.FunctionDef
}

// Edge is a single call-site edge: from caller to callee, at the 1-based
// source line of the call. Multiple edges between the same endpoints are
// permitted at distinct lines; the builder never emits an identical triple
// twice.
type Edge struct {
	From past.ID
	To   past.ID
	Line int
}

// Graph is a call graph: a FunctionId-keyed node mapping (insertion order
// irrelevant) and an ordered edge sequence. Once Build returns, a Graph is
// logically immutable — queries only read it.
type Graph struct {
	Nodes map[past.ID]Node
	Edges []Edge
}

// NewGraph returns an empty graph, ready for incremental construction by
// the builder.
func NewGraph() *Graph {
	return &Graph{Nodes: make(map[past.ID]Node)}
}

// AddNode inserts or replaces a node, keyed by its ID.
func (g *Graph) AddNode(n Node) {
	g.Nodes[n.ID] = n
}

// AddEdge appends an edge. It does not deduplicate — callers (the builder)
// are responsible for not emitting the same (from, to, line) triple twice.
func (g *Graph) AddEdge(e Edge) {
	g.Edges = append(g.Edges, e)
}

// Stats summarizes a graph's size.
type Stats struct {
	Nodes         int
	Edges         int
	ExternalNodes int
	Cycles        int
}

// Stats computes node/edge/external-node/cycle counts for the graph.
func (g *Graph) Stats() Stats {
	s := Stats{Nodes: len(g.Nodes), Edges: len(g.Edges)}
	for _, n := range g.Nodes {
		if n.IsExternal {
			s.ExternalNodes++
		}
	}
	s.Cycles = len(g.FindCycles())
	return s
}

// Cycle is a non-empty ordered sequence of FunctionIds forming a simple
// cycle — no node repeats except the implicit return to the first.
type Cycle []past.ID
