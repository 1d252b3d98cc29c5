// Package frontend defines the language frontend capability that the core
// consumes: given a source file and a logical module path, produce an
// Abstract AST plus the module-level imports it declares. Concrete
// frontends (rust, python, javascript) are collaborators that implement
// this interface; the core never parses source itself.
package frontend

import "github.com/shivasurya/trackast/past"

// Import is one module-level import declaration: the local alias
// introduced and the target module specifier as written in source.
type Import struct {
	Alias  string
	Target string
}

// Frontend is a language-specific adapter satisfying the core's parsing
// contract. A frontend must not resolve calls — it records every call site
// exactly as written, textually, leaving resolution to the callgraph
// package.
type Frontend interface {
	// Language is the frontend's tag, e.g. "rust", "python", "javascript".
	Language() string

	// FileExtensions lists the extensions this frontend claims, e.g. [".rs"].
	FileExtensions() []string

	// ModuleSeparator is the frontend-specific join character used to turn
	// a file's path (relative to root) into a module path: "::" for Rust,
	// "." for Python, "/" for JavaScript.
	ModuleSeparator() string

	// IndexBasename is the filename (without extension) that represents a
	// directory's module when resolving a directory import, e.g. "mod",
	// "__init__", "index".
	IndexBasename() string

	// TranslateFile parses path and produces its AbstractAST. modulePath is
	// used verbatim as FunctionDef.Module; TranslateFile must not override
	// it. Function definitions at any nesting depth (methods, nested
	// functions, class methods) are returned uniformly.
	TranslateFile(path string, modulePath string) (past.AbstractAST, error)

	// ExtractImports returns the module-level import declarations of path.
	ExtractImports(path string) ([]Import, error)

	// IsKnownExternal reports whether a module specifier is a standard
	// library root or well-known ecosystem prefix that should never be
	// resolved against the local root.
	IsKnownExternal(specifier string) bool
}

// Registry dispatches a file extension or explicit language tag to the
// Frontend that handles it.
type Registry struct {
	byLanguage map[string]Frontend
	byExt      map[string]Frontend
}

// NewRegistry creates an empty frontend registry.
func NewRegistry() *Registry {
	return &Registry{
		byLanguage: make(map[string]Frontend),
		byExt:      make(map[string]Frontend),
	}
}

// Register adds a frontend, indexing it by language tag and every
// extension it claims. A later registration for the same extension
// replaces an earlier one.
func (r *Registry) Register(f Frontend) {
	r.byLanguage[f.Language()] = f
	for _, ext := range f.FileExtensions() {
		r.byExt[ext] = f
	}
}

// ByLanguage looks up a frontend by its explicit tag.
func (r *Registry) ByLanguage(lang string) (Frontend, bool) {
	f, ok := r.byLanguage[lang]
	return f, ok
}

// ByExtension looks up a frontend by file extension (including the dot).
func (r *Registry) ByExtension(ext string) (Frontend, bool) {
	f, ok := r.byExt[ext]
	return f, ok
}
