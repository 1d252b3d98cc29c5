package encode

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shivasurya/trackast/callgraph"
	"github.com/shivasurya/trackast/past"
)

func buildSample(t *testing.T) *callgraph.Graph {
	t.Helper()
	a := past.FunctionDef{Name: "a", Module: "f", Signature: past.EmptySignature(), Calls: []past.FunctionCall{
		{TargetName: "b", Line: 2},
		{TargetName: "print", Line: 3},
	}}
	b := past.FunctionDef{Name: "b", Module: "f", Signature: past.EmptySignature()}
	g, err := callgraph.Build([]past.FunctionDef{a, b})
	require.NoError(t, err)
	return g
}

func TestEncodeJSON_Shape(t *testing.T) {
	g := buildSample(t)
	data, err := EncodeJSON(g)
	require.NoError(t, err)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Contains(t, doc, "nodes")
	assert.Contains(t, doc, "edges")

	nodes := doc["nodes"].([]interface{})
	assert.Len(t, nodes, 3)
	edges := doc["edges"].([]interface{})
	assert.Len(t, edges, 2)
}

func TestEncodeJSON_Deterministic(t *testing.T) {
	g := buildSample(t)
	first, err := EncodeJSON(g)
	require.NoError(t, err)
	second, err := EncodeJSON(g)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestJSON_RoundTrip(t *testing.T) {
	g := buildSample(t)
	data, err := EncodeJSON(g)
	require.NoError(t, err)

	decoded, err := DecodeJSON(data)
	require.NoError(t, err)

	assert.Equal(t, len(g.Nodes), len(decoded.Nodes))
	assert.Equal(t, len(g.Edges), len(decoded.Edges))

	for id, n := range g.Nodes {
		dn, ok := decoded.Nodes[id]
		require.True(t, ok)
		assert.Equal(t, n.IsExternal, dn.IsExternal)
	}

	reEncoded, err := EncodeJSON(decoded)
	require.NoError(t, err)
	assert.JSONEq(t, string(data), string(reEncoded))
}

func TestEncodeJSON_ExternalNodeHasNoMetadataName(t *testing.T) {
	g := buildSample(t)
	data, err := EncodeJSON(g)
	require.NoError(t, err)

	var doc jsonGraph
	require.NoError(t, json.Unmarshal(data, &doc))
	for _, n := range doc.Nodes {
		if n.IsExternal {
			assert.Empty(t, n.Metadata.Name)
		}
	}
}
