package encode

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/shivasurya/trackast/callgraph"
	"github.com/shivasurya/trackast/past"
)

// EncodeDOT renders a graph as a Graphviz DOT digraph: one node line per
// node (shape=box for internal, shape=ellipse,style=dashed for external),
// one edge line per edge labeled with its source line. Nodes are emitted
// sorted by FunctionId, matching EncodeJSON's determinism.
func EncodeDOT(g *callgraph.Graph) []byte {
	var b strings.Builder
	b.WriteString("digraph CallGraph {\n")

	ids := make([]past.ID, 0, len(g.Nodes))
	for id := range g.Nodes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		n := g.Nodes[id]
		shape := "box"
		if n.IsExternal {
			shape = "ellipse, style=dashed"
		}
		fmt.Fprintf(&b, "  %s [shape=%s];\n", quoteDOT(string(id)), shape)
	}

	for _, e := range g.Edges {
		fmt.Fprintf(&b, "  %s -> %s [label=\"L%d\"];\n", quoteDOT(string(e.From)), quoteDOT(string(e.To)), e.Line)
	}

	b.WriteString("}\n")
	return []byte(b.String())
}

// quoteDOT quotes a FunctionId for use as a DOT node identifier, escaping
// embedded double quotes.
func quoteDOT(id string) string {
	return strconv.Quote(id)
}
