// Package rust implements the trackast language frontend for Rust source
// files, using the tree-sitter Rust grammar.
package rust

import (
	"context"
	"fmt"
	"os"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	tsrust "github.com/smacker/go-tree-sitter/rust"

	"github.com/shivasurya/trackast/frontend"
	"github.com/shivasurya/trackast/past"
	"github.com/shivasurya/trackast/trackerr"
)

// knownExternalCrates is the known-external predicate: the crate roots
// shipped with the Rust toolchain (std, core, alloc, test, proc_macro).
var knownExternalCrates = map[string]bool{
	"std": true, "core": true, "alloc": true, "test": true, "proc_macro": true,
}

// Frontend implements frontend.Frontend for Rust.
type Frontend struct{}

// New returns a Rust frontend.
func New() *Frontend { return &Frontend{} }

func (*Frontend) Language() string { return "rust" }
func (*Frontend) FileExtensions() []string { return []string{".rs"} }
func (*Frontend) ModuleSeparator() string { return "::" }
func (*Frontend) IndexBasename() string { return "mod" }

func (*Frontend) IsKnownExternal(specifier string) bool {
	root := specifier
	if i := strings.Index(specifier, "::"); i >= 0 {
		root = specifier[:i]
	}
	return knownExternalCrates[root]
}

func parseSource(source []byte) (*sitter.Tree, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(tsrust.GetLanguage())
	defer parser.Close()

	return parser.ParseCtx(context.Background(), nil, source)
}

// TranslateFile parses path and produces its AbstractAST.
func (f *Frontend) TranslateFile(path string, modulePath string) (past.AbstractAST, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return past.AbstractAST{}, fmt.Errorf("reading %s: %w", path, err)
	}

	tree, err := parseSource(source)
	if err != nil {
		return past.AbstractAST{}, &trackerr.ParseFailure{Path: path, Detail: err.Error()}
	}
	defer tree.Close()

	var defs []past.FunctionDef
	collectFunctionDefs(tree.RootNode(), source, modulePath, &defs)

	return past.AbstractAST{Module: modulePath, Functions: defs}, nil
}

func collectFunctionDefs(node *sitter.Node, source []byte, modulePath string, out *[]past.FunctionDef) {
	if node == nil {
		return
	}
	if node.Type() == "function_item" {
		*out = append(*out, buildFunctionDef(node, source, modulePath))
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		collectFunctionDefs(node.Child(i), source, modulePath, out)
	}
}

func buildFunctionDef(node *sitter.Node, source []byte, modulePath string) past.FunctionDef {
	nameNode := node.ChildByFieldName("name")
	name := ""
	if nameNode != nil {
		name = nameNode.Content(source)
	}

	sig := past.Signature{
		Params:     extractParams(node.ChildByFieldName("parameters"), source),
		ReturnType: extractReturnType(node, source),
	}

	var calls []past.FunctionCall
	body := node.ChildByFieldName("body")
	collectCalls(body, source, &calls)

	return past.FunctionDef{Name: name, Module: modulePath, Signature: sig, Calls: calls}
}

func extractParams(paramsNode *sitter.Node, source []byte) []past.Param {
	if paramsNode == nil {
		return nil
	}
	var params []past.Param
	for i := 0; i < int(paramsNode.ChildCount()); i++ {
		child := paramsNode.Child(i)
		switch child.Type() {
		case "self_parameter":
			params = append(params, past.Param{Name: "self"})
		case "parameter":
			patternNode := child.ChildByFieldName("pattern")
			typeNode := child.ChildByFieldName("type")
			p := past.Param{}
			if patternNode != nil {
				p.Name = patternNode.Content(source)
			}
			if typeNode != nil {
				p.Type = typeNode.Content(source)
			}
			params = append(params, p)
		}
	}
	return params
}

func extractReturnType(fnNode *sitter.Node, source []byte) string {
	retNode := fnNode.ChildByFieldName("return_type")
	if retNode == nil {
		return ""
	}
	return retNode.Content(source)
}

func collectCalls(node *sitter.Node, source []byte, out *[]past.FunctionCall) {
	if node == nil {
		return
	}
	switch node.Type() {
	case "call_expression":
		if c, ok := buildCall(node, source); ok {
			*out = append(*out, c)
		}
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		collectCalls(node.Child(i), source, out)
	}
}

func buildCall(node *sitter.Node, source []byte) (past.FunctionCall, bool) {
	target := node.ChildByFieldName("function")
	if target == nil {
		return past.FunctionCall{}, false
	}
	line := int(node.StartPoint().Row) + 1

	switch target.Type() {
	case "identifier":
		return past.FunctionCall{TargetName: target.Content(source), Line: line}, true
	case "scoped_identifier":
		// path::to::func() — explicit module qualification.
		pathNode := target.ChildByFieldName("path")
		nameNode := target.ChildByFieldName("name")
		if nameNode == nil {
			return past.FunctionCall{}, false
		}
		hint := ""
		if pathNode != nil {
			hint = pathNode.Content(source)
		}
		return past.FunctionCall{TargetName: nameNode.Content(source), TargetModule: hint, Line: line}, true
	case "field_expression":
		// receiver.method() — method call, hint is the receiver expression
		// text (not a resolvable module, but recorded for the resolver to
		// attempt and fall back from).
		value := target.ChildByFieldName("value")
		field := target.ChildByFieldName("field")
		if field == nil {
			return past.FunctionCall{}, false
		}
		hint := ""
		if value != nil {
			hint = value.Content(source)
		}
		return past.FunctionCall{TargetName: field.Content(source), TargetModule: hint, Line: line}, true
	default:
		return past.FunctionCall{}, false
	}
}

// ExtractImports returns Rust `use` declarations, including aliases
// (`use foo::bar as baz`) and grouped lists (`use foo::{bar, baz}`).
func (f *Frontend) ExtractImports(path string) ([]frontend.Import, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	tree, err := parseSource(source)
	if err != nil {
		return nil, &trackerr.ParseFailure{Path: path, Detail: err.Error()}
	}
	defer tree.Close()

	var imports []frontend.Import
	traverseForImports(tree.RootNode(), source, &imports)
	return imports, nil
}

func traverseForImports(node *sitter.Node, source []byte, out *[]frontend.Import) {
	if node == nil {
		return
	}
	if node.Type() == "use_declaration" {
		argNode := node.ChildByFieldName("argument")
		if argNode != nil {
			collectUseTree(argNode, "", source, out)
		}
		return
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		traverseForImports(node.Child(i), source, out)
	}
}

// collectUseTree recursively expands a use-tree into (alias, target) pairs.
// prefix accumulates the scoped path seen so far.
func collectUseTree(node *sitter.Node, prefix string, source []byte, out *[]frontend.Import) {
	switch node.Type() {
	case "identifier", "self":
		target := joinPath(prefix, node.Content(source))
		*out = append(*out, frontend.Import{Alias: node.Content(source), Target: target})
	case "scoped_identifier":
		pathNode := node.ChildByFieldName("path")
		nameNode := node.ChildByFieldName("name")
		newPrefix := prefix
		if pathNode != nil {
			newPrefix = joinPath(prefix, pathNode.Content(source))
		}
		if nameNode != nil {
			target := joinPath(newPrefix, nameNode.Content(source))
			*out = append(*out, frontend.Import{Alias: nameNode.Content(source), Target: target})
		}
	case "use_as_clause":
		pathNode := node.ChildByFieldName("path")
		aliasNode := node.ChildByFieldName("alias")
		if pathNode == nil || aliasNode == nil {
			return
		}
		target := joinPath(prefix, pathNode.Content(source))
		*out = append(*out, frontend.Import{Alias: aliasNode.Content(source), Target: target})
	case "scoped_use_list":
		pathNode := node.ChildByFieldName("path")
		listNode := node.ChildByFieldName("list")
		newPrefix := prefix
		if pathNode != nil {
			newPrefix = joinPath(prefix, pathNode.Content(source))
		}
		if listNode != nil {
			for i := 0; i < int(listNode.ChildCount()); i++ {
				collectUseTree(listNode.Child(i), newPrefix, source, out)
			}
		}
	case "use_wildcard":
		pathNode := node.ChildByFieldName("path")
		if pathNode != nil {
			target := joinPath(prefix, pathNode.Content(source)) + "::*"
			*out = append(*out, frontend.Import{Alias: "*", Target: target})
		}
	}
}

func joinPath(prefix, segment string) string {
	if prefix == "" {
		return segment
	}
	return prefix + "::" + segment
}

var _ frontend.Frontend = (*Frontend)(nil)
