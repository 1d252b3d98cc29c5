// Package javascript implements the trackast language frontend for
// JavaScript source files, using the tree-sitter JavaScript grammar.
// Structured the same way as the python frontend: a direct AST walk
// collecting function definitions, call sites, and import declarations.
package javascript

import (
	"context"
	"fmt"
	"os"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	tsjavascript "github.com/smacker/go-tree-sitter/javascript"

	"github.com/shivasurya/trackast/frontend"
	"github.com/shivasurya/trackast/past"
	"github.com/shivasurya/trackast/trackerr"
)

// Frontend implements frontend.Frontend for JavaScript.
type Frontend struct{}

// New returns a JavaScript frontend.
func New() *Frontend { return &Frontend{} }

func (*Frontend) Language() string { return "javascript" }
func (*Frontend) FileExtensions() []string { return []string{".js", ".mjs"} }
func (*Frontend) ModuleSeparator() string { return "/" }
func (*Frontend) IndexBasename() string { return "index" }

// IsKnownExternal reports bare specifiers (no leading "./" or "../") as
// external: those are node_modules package imports, never local files.
func (*Frontend) IsKnownExternal(specifier string) bool {
	return !strings.HasPrefix(specifier, "./") && !strings.HasPrefix(specifier, "../")
}

func parseSource(source []byte) (*sitter.Tree, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(tsjavascript.GetLanguage())
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

	switch node.Type() {
	case "function_declaration", "method_definition", "generator_function_declaration":
		*out = append(*out, buildFunctionDef(node, source, modulePath))
	case "variable_declarator":
		// const name = function() {} / const name = () => {}
		if fn := namedFunctionExpression(node, source, modulePath); fn != nil {
			*out = append(*out, *fn)
		}
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		collectFunctionDefs(node.Child(i), source, modulePath, out)
	}
}

func namedFunctionExpression(node *sitter.Node, source []byte, modulePath string) *past.FunctionDef {
	nameNode := node.ChildByFieldName("name")
	valueNode := node.ChildByFieldName("value")
	if nameNode == nil || valueNode == nil {
		return nil
	}
	switch valueNode.Type() {
	case "function", "function_expression", "arrow_function":
		fn := buildFunctionDefNamed(valueNode, source, modulePath, nameNode.Content(source))
		return &fn
	}
	return nil
}

func buildFunctionDef(node *sitter.Node, source []byte, modulePath string) past.FunctionDef {
	nameNode := node.ChildByFieldName("name")
	name := ""
	if nameNode != nil {
		name = nameNode.Content(source)
	}
	return buildFunctionDefNamed(node, source, modulePath, name)
}

func buildFunctionDefNamed(node *sitter.Node, source []byte, modulePath, name string) past.FunctionDef {
	sig := past.Signature{Params: extractParams(node.ChildByFieldName("parameters"), source)}

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
		case "identifier":
			params = append(params, past.Param{Name: child.Content(source)})
		case "assignment_pattern":
			left := child.ChildByFieldName("left")
			if left != nil {
				params = append(params, past.Param{Name: left.Content(source)})
			}
		}
	}
	return params
}

func collectCalls(node *sitter.Node, source []byte, out *[]past.FunctionCall) {
	if node == nil {
		return
	}
	if node.Type() == "call_expression" {
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
	case "member_expression":
		obj := target.ChildByFieldName("object")
		prop := target.ChildByFieldName("property")
		if prop == nil {
			return past.FunctionCall{}, false
		}
		hint := ""
		if obj != nil {
			hint = obj.Content(source)
		}
		return past.FunctionCall{TargetName: prop.Content(source), TargetModule: hint, Line: line}, true
	default:
		return past.FunctionCall{}, false
	}
}

// ExtractImports returns ES module import declarations: default, named,
// namespace, and aliased forms.
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
	if node.Type() == "import_statement" {
		processImportStatement(node, source, out)
		return
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		traverseForImports(node.Child(i), source, out)
	}
}

func processImportStatement(node *sitter.Node, source []byte, out *[]frontend.Import) {
	sourceNode := node.ChildByFieldName("source")
	if sourceNode == nil {
		return
	}
	target := strings.Trim(sourceNode.Content(source), `"'`)

	var clause *sitter.Node
	for i := 0; i < int(node.ChildCount()); i++ {
		if child := node.Child(i); child.Type() == "import_clause" {
			clause = child
			break
		}
	}
	if clause == nil {
		// side-effect-only import: import "./setup.js"
		*out = append(*out, frontend.Import{Alias: target, Target: target})
		return
	}

	for i := 0; i < int(clause.ChildCount()); i++ {
		child := clause.Child(i)
		switch child.Type() {
		case "identifier":
			// default import
			*out = append(*out, frontend.Import{Alias: child.Content(source), Target: target})
		case "namespace_import":
			nameNode := child.Child(child.ChildCount() - 1)
			if nameNode != nil {
				*out = append(*out, frontend.Import{Alias: nameNode.Content(source), Target: target})
			}
		case "named_imports":
			for j := 0; j < int(child.ChildCount()); j++ {
				spec := child.Child(j)
				if spec.Type() != "import_specifier" {
					continue
				}
				nameNode := spec.ChildByFieldName("name")
				aliasNode := spec.ChildByFieldName("alias")
				if nameNode == nil {
					continue
				}
				alias := nameNode.Content(source)
				if aliasNode != nil {
					alias = aliasNode.Content(source)
				}
				*out = append(*out, frontend.Import{Alias: alias, Target: target})
			}
		}
	}
}

var _ frontend.Frontend = (*Frontend)(nil)
