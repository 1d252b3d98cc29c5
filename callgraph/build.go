package callgraph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shivasurya/trackast/past"
	"github.com/shivasurya/trackast/trackerr"
)

// Build converts a merged AbstractAST (the loader's output) into a
// resolved call graph, following the spec's four phases: index, node
// creation, call resolution, and validation.
func Build(defs []past.FunctionDef) (*Graph, error) {
	index, bySimpleName, err := indexDefs(defs)
	if err != nil {
		return nil, err
	}

	g := NewGraph()
	for _, def := range defs {
		g.AddNode(Node{ID: def.ID(), IsExternal: false, Def: def})
	}

	emitted := make(map[Edge]bool)
	for _, def := range defs {
		for _, call := range def.Calls {
			target := resolveCall(def, call, index, bySimpleName)
			if _, ok := g.Nodes[target]; !ok {
				g.AddNode(Node{ID: target, IsExternal: true})
			}
			e := Edge{From: def.ID(), To: target, Line: call.Line}
			if emitted[e] {
				continue
			}
			emitted[e] = true
			g.AddEdge(e)
		}
	}

	if err := validate(g); err != nil {
		return nil, err
	}
	return g, nil
}

// indexDefs builds the FunctionId→FunctionDef index and the simple-name
// multimap used for unqualified resolution. A duplicate FunctionId is a
// fatal error — it is never silently coalesced.
func indexDefs(defs []past.FunctionDef) (map[past.ID]past.FunctionDef, map[string][]past.FunctionDef, error) {
	index := make(map[past.ID]past.FunctionDef, len(defs))
	bySimpleName := make(map[string][]past.FunctionDef)

	for _, def := range defs {
		id := def.ID()
		if _, exists := index[id]; exists {
			return nil, nil, &trackerr.DuplicateFunction{ID: string(id)}
		}
		index[id] = def
		bySimpleName[def.Name] = append(bySimpleName[def.Name], def)
	}

	return index, bySimpleName, nil
}

// resolveCall implements phase 3's per-call-site resolution, returning the
// FunctionId of the resolved (or synthesized external) target.
func resolveCall(caller past.FunctionDef, call past.FunctionCall, index map[past.ID]past.FunctionDef, bySimpleName map[string][]past.FunctionDef) past.ID {
	if call.HasTargetModule() {
		if id, ok := resolveQualified(call.TargetModule, call.TargetName, index); ok {
			return id
		}
		return past.ExternalID(call.TargetName)
	}

	if id, ok := resolveInHierarchy(caller.Module, call.TargetName, index); ok {
		return id
	}

	if id, ok := resolveGlobalSimpleName(call.TargetName, bySimpleName); ok {
		return id
	}

	return past.ExternalID(call.TargetName)
}

// resolveQualified looks up generate_id(module, name, ·) permitting any
// signature; ties are broken by the lexicographically smallest signature
// display.
func resolveQualified(module, name string, index map[past.ID]past.FunctionDef) (past.ID, bool) {
	var matches []past.FunctionDef
	for _, def := range index {
		if def.Module == module && def.Name == name {
			matches = append(matches, def)
		}
	}
	if len(matches) == 0 {
		return "", false
	}
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].Signature.Display() < matches[j].Signature.Display()
	})
	return matches[0].ID(), true
}

// resolveInHierarchy searches callerModule first, then walks up the module
// hierarchy one segment at a time, matching by simple name. Ties at the
// level where a match is first found are broken by lexicographically
// smallest signature display, mirroring resolveQualified.
func resolveInHierarchy(callerModule, name string, index map[past.ID]past.FunctionDef) (past.ID, bool) {
	for _, candidate := range append([]string{callerModule}, ancestors(callerModule)...) {
		if id, ok := resolveQualified(candidate, name, index); ok {
			return id, ok
		}
	}
	return "", false
}

// resolveGlobalSimpleName is the final fallback once the ancestor walk is
// exhausted: match by simple name across every indexed function. If
// exactly one exists, use it; if multiple, the lexicographically smallest
// FunctionId wins (a weak, reproducible-not-correct disambiguator per the
// spec's design notes).
func resolveGlobalSimpleName(name string, bySimpleName map[string][]past.FunctionDef) (past.ID, bool) {
	candidates := bySimpleName[name]
	if len(candidates) == 0 {
		return "", false
	}

	ids := make([]past.ID, len(candidates))
	for i, def := range candidates {
		ids[i] = def.ID()
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids[0], true
}

// ancestors returns callerModule's parent module paths, from its immediate
// parent up to (but not including) the empty root, detecting the
// separator in use (::, /, or .) from the module string itself.
func ancestors(module string) []string {
	sep := moduleSeparator(module)
	if sep == "" {
		return nil
	}
	segments := strings.Split(module, sep)
	var out []string
	for i := len(segments) - 1; i > 0; i-- {
		out = append(out, strings.Join(segments[:i], sep))
	}
	return out
}

func moduleSeparator(module string) string {
	switch {
	case strings.Contains(module, "::"):
		return "::"
	case strings.Contains(module, "/"):
		return "/"
	case strings.Contains(module, "."):
		return "."
	default:
		return ""
	}
}

// validate asserts the builder's invariants: every edge's endpoints exist,
// and external nodes have no outgoing edges.
func validate(g *Graph) error {
	for _, e := range g.Edges {
		if _, ok := g.Nodes[e.From]; !ok {
			return &trackerr.UnknownFunction{ID: string(e.From)}
		}
		if _, ok := g.Nodes[e.To]; !ok {
			return &trackerr.UnknownFunction{ID: string(e.To)}
		}
	}

	outgoing := make(map[past.ID]bool)
	for _, e := range g.Edges {
		outgoing[e.From] = true
	}
	for id, n := range g.Nodes {
		if n.IsExternal && outgoing[id] {
			return fmt.Errorf("invariant violated: external node %q has outgoing edges", id)
		}
	}

	return nil
}
