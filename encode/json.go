// Package encode implements the two peripheral serializers named in the
// spec: a JSON object graph and a Graphviz DOT digraph. Neither carries
// algorithmic weight; both exist to give callgraph.Graph a stable wire
// format for the CLI's --format flag.
package encode

import (
	"encoding/json"
	"sort"

	"github.com/shivasurya/trackast/callgraph"
	"github.com/shivasurya/trackast/past"
)

// jsonNode is one entry of the JSON "nodes" array.
type jsonNode struct {
	ID         past.ID          `json:"id"`
	IsExternal bool             `json:"is_external"`
	Metadata   jsonNodeMetadata `json:"metadata"`
}

// jsonParam is one (name, type) pair of a signature, mirroring past.Param.
type jsonParam struct {
	Name string `json:"name,omitempty"`
	Type string `json:"type"`
}

// jsonNodeMetadata carries the FunctionDef fields for internal nodes,
// structured rather than pre-rendered so decode can reconstruct an
// identical past.Signature (Display is derived, not stored). It is the
// zero value for external (synthesized) nodes, which have no definition.
type jsonNodeMetadata struct {
	Name       string      `json:"name,omitempty"`
	Module     string      `json:"module,omitempty"`
	Params     []jsonParam `json:"params,omitempty"`
	ReturnType string      `json:"return_type,omitempty"`
	Signature  string      `json:"signature,omitempty"`
}

// jsonEdge is one entry of the JSON "edges" array.
type jsonEdge struct {
	From past.ID `json:"from"`
	To   past.ID `json:"to"`
	Line int     `json:"line"`
}

// jsonGraph is the top-level JSON document shape.
type jsonGraph struct {
	Nodes []jsonNode `json:"nodes"`
	Edges []jsonEdge `json:"edges"`
}

// EncodeJSON renders a graph as the spec's JSON wire format: nodes sorted
// by FunctionId for determinism (identical input files always produce
// byte-identical output), edges in the builder's insertion order.
func EncodeJSON(g *callgraph.Graph) ([]byte, error) {
	doc := toJSONGraph(g)
	return json.MarshalIndent(doc, "", "  ")
}

func toJSONGraph(g *callgraph.Graph) jsonGraph {
	ids := make([]past.ID, 0, len(g.Nodes))
	for id := range g.Nodes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	doc := jsonGraph{
		Nodes: make([]jsonNode, 0, len(ids)),
		Edges: make([]jsonEdge, 0, len(g.Edges)),
	}
	for _, id := range ids {
		n := g.Nodes[id]
		jn := jsonNode{ID: n.ID, IsExternal: n.IsExternal}
		if !n.IsExternal {
			params := make([]jsonParam, len(n.Def.Signature.Params))
			for i, p := range n.Def.Signature.Params {
				params[i] = jsonParam{Name: p.Name, Type: p.Type}
			}
			jn.Metadata = jsonNodeMetadata{
				Name:       n.Def.Name,
				Module:     n.Def.Module,
				Params:     params,
				ReturnType: n.Def.Signature.ReturnType,
				Signature:  n.Def.Signature.Display(),
			}
		}
		doc.Nodes = append(doc.Nodes, jn)
	}
	for _, e := range g.Edges {
		doc.Edges = append(doc.Edges, jsonEdge{From: e.From, To: e.To, Line: e.Line})
	}
	return doc
}

// DecodeJSON parses the JSON wire format back into a callgraph.Graph.
// External nodes round-trip as Node{IsExternal: true}; internal nodes
// reconstruct an identical past.Signature from the structured params and
// return type, so a decode-then-encode reproduces the original bytes
// modulo node map order, per the round-trip invariant.
func DecodeJSON(data []byte) (*callgraph.Graph, error) {
	var doc jsonGraph
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	g := callgraph.NewGraph()
	for _, jn := range doc.Nodes {
		n := callgraph.Node{ID: jn.ID, IsExternal: jn.IsExternal}
		if !jn.IsExternal {
			params := make([]past.Param, len(jn.Metadata.Params))
			for i, p := range jn.Metadata.Params {
				params[i] = past.Param{Name: p.Name, Type: p.Type}
			}
			n.Def = past.FunctionDef{
				Name:   jn.Metadata.Name,
				Module: jn.Metadata.Module,
				Signature: past.Signature{
					Params:     params,
					ReturnType: jn.Metadata.ReturnType,
				},
			}
		}
		g.AddNode(n)
	}
	for _, je := range doc.Edges {
		g.AddEdge(callgraph.Edge{From: je.From, To: je.To, Line: je.Line})
	}
	return g, nil
}
