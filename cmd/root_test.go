package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shivasurya/trackast/callgraph"
	"github.com/shivasurya/trackast/past"
)

func writeTempPythonProject(t *testing.T) (mainFile, root string) {
	t.Helper()
	dir := t.TempDir()
	mainPy := filepath.Join(dir, "main.py")
	require.NoError(t, os.WriteFile(mainPy, []byte("def entry():\n    helper()\n\n\ndef helper():\n    print('hi')\n"), 0o644))
	return mainPy, dir
}

func TestRunBuild_JSONOutput(t *testing.T) {
	mainFile, root := writeTempPythonProject(t)
	outFile := filepath.Join(t.TempDir(), "out.json")

	rootCmd.SetArgs([]string{
		"--input", mainFile,
		"--root", root,
		"--output", outFile,
		"--format", "json",
	})
	require.NoError(t, rootCmd.Execute())

	data, err := os.ReadFile(outFile)
	require.NoError(t, err)

	var doc struct {
		Nodes []interface{} `json:"nodes"`
		Edges []interface{} `json:"edges"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.NotEmpty(t, doc.Nodes)
}

func TestRunBuild_DOTOutput(t *testing.T) {
	mainFile, root := writeTempPythonProject(t)
	outFile := filepath.Join(t.TempDir(), "out.dot")

	rootCmd.SetArgs([]string{
		"--input", mainFile,
		"--root", root,
		"--output", outFile,
		"--format", "dot",
	})
	require.NoError(t, rootCmd.Execute())

	data, err := os.ReadFile(outFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "digraph CallGraph")
}

func TestRunBuild_RejectsUnsupportedFormat(t *testing.T) {
	mainFile, root := writeTempPythonProject(t)

	rootCmd.SetArgs([]string{
		"--input", mainFile,
		"--root", root,
		"--format", "yaml",
	})
	err := rootCmd.Execute()
	assert.Error(t, err)
}

func TestRestrictToEntries(t *testing.T) {
	a := past.FunctionDef{Name: "a", Module: "f", Signature: past.EmptySignature(), Calls: []past.FunctionCall{{TargetName: "b", Line: 1}}}
	b := past.FunctionDef{Name: "b", Module: "f", Signature: past.EmptySignature()}
	c := past.FunctionDef{Name: "c", Module: "f", Signature: past.EmptySignature()}
	g, err := callgraph.Build([]past.FunctionDef{a, b, c})
	require.NoError(t, err)

	restricted, err := restrictToEntries(g, []string{string(a.ID())})
	require.NoError(t, err)

	assert.Len(t, restricted.Nodes, 2)
	_, hasC := restricted.Nodes[c.ID()]
	assert.False(t, hasC)
}
