// Package loader implements the module loader: starting from one entry
// file, it recursively discovers dependencies by asking a frontend for
// imports, resolves import specifiers to filesystem paths under a
// configured root, and yields the merged Abstract AST. Grounded on the
// teacher's graph/callgraph.BuildCallGraph staging (index → extract →
// resolve) and ImportMapCache, generalized from a plain map+mutex to a
// bounded LRU so memory is capped on large repositories.
package loader

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/shivasurya/trackast/frontend"
	"github.com/shivasurya/trackast/output"
	"github.com/shivasurya/trackast/past"
	"github.com/shivasurya/trackast/trackerr"
)

// DefaultCacheSize is the loader's default per-file AST/import cache
// capacity when the caller doesn't override it.
const DefaultCacheSize = 256

type fileCacheEntry struct {
	ast     past.AbstractAST
	imports []frontend.Import
}

// Loader discovers and translates a project's files into a merged
// AbstractAST. One Loader owns its worklist and loaded set for the
// duration of a single Load call; it is not meant to be reused
// concurrently.
type Loader struct {
	fe       frontend.Frontend
	root     string
	discover bool
	logger   *output.Logger
	cache    *lru.Cache[string, fileCacheEntry]
}

// Option configures a Loader.
type Option func(*Loader)

// WithLogger attaches a logger for progress/debug diagnostics. Defaults to
// a default-verbosity stderr logger, which prints only warnings.
func WithLogger(l *output.Logger) Option {
	return func(ld *Loader) { ld.logger = l }
}

// WithCacheSize overrides the per-file cache capacity.
func WithCacheSize(size int) Option {
	return func(ld *Loader) {
		if size <= 0 {
			size = DefaultCacheSize
		}
		cache, _ := lru.New[string, fileCacheEntry](size)
		ld.cache = cache
	}
}

// New creates a Loader for the given frontend, resolution root, and
// discovery mode.
func New(fe frontend.Frontend, root string, discover bool, opts ...Option) *Loader {
	cache, _ := lru.New[string, fileCacheEntry](DefaultCacheSize)
	ld := &Loader{
		fe:       fe,
		root:     root,
		discover: discover,
		logger:   output.NewLogger(output.VerbosityDefault),
		cache:    cache,
	}
	for _, opt := range opts {
		opt(ld)
	}
	return ld
}

// Load runs the loader algorithm from entry, returning the concatenation of
// every discovered file's AbstractAST in discovery order.
func (l *Loader) Load(entry string) ([]past.AbstractAST, error) {
	loaded := make(map[string]bool)
	worklist := []string{entry}
	var out []past.AbstractAST

	first := true
	for len(worklist) > 0 {
		file := worklist[0]
		worklist = worklist[1:]

		canon, err := filepath.Abs(file)
		if err != nil {
			canon = file
		}
		if loaded[canon] {
			continue
		}
		loaded[canon] = true

		ast, imports, err := l.translate(file)
		if err != nil {
			if first {
				var parseFailure *trackerr.ParseFailure
				if errors.As(err, &parseFailure) {
					return nil, parseFailure
				}
				return nil, &trackerr.IoError{Path: file, Err: err}
			}
			l.logger.Warning("skipping unreadable dependency %s: %v", file, err)
			continue
		}

		out = append(out, ast)
		l.logger.Debug("translated %s as module %s (%d functions)", file, ast.Module, len(ast.Functions))

		if l.discover {
			for _, imp := range imports {
				resolved, ok := l.resolveModule(imp.Target)
				if !ok {
					l.logger.Debug("%v", &trackerr.UnresolvedImport{Specifier: imp.Target})
					continue
				}
				resolvedCanon, err := filepath.Abs(resolved)
				if err != nil {
					resolvedCanon = resolved
				}
				if !loaded[resolvedCanon] {
					worklist = append(worklist, resolved)
				}
			}
		}

		first = false
	}

	return out, nil
}

// translate reads the cache or extracts a fresh AbstractAST+imports pair.
func (l *Loader) translate(file string) (past.AbstractAST, []frontend.Import, error) {
	canon, err := filepath.Abs(file)
	if err != nil {
		canon = file
	}

	if entry, ok := l.cache.Get(canon); ok {
		return entry.ast, entry.imports, nil
	}

	modulePath := l.modulePath(file)

	ast, err := l.fe.TranslateFile(file, modulePath)
	if err != nil {
		return past.AbstractAST{}, nil, err
	}

	var imports []frontend.Import
	if l.discover {
		imports, err = l.fe.ExtractImports(file)
		if err != nil {
			return past.AbstractAST{}, nil, err
		}
	}

	l.cache.Add(canon, fileCacheEntry{ast: ast, imports: imports})
	return ast, imports, nil
}

// modulePath derives a module path from file relative to root, stripping
// the extension and joining segments with the frontend's separator.
func (l *Loader) modulePath(file string) string {
	rel, err := filepath.Rel(l.root, file)
	if err != nil {
		rel = filepath.Base(file)
	}
	rel = strings.TrimSuffix(rel, filepath.Ext(rel))
	segments := strings.Split(filepath.ToSlash(rel), "/")
	return strings.Join(segments, l.fe.ModuleSeparator())
}

// resolveModule maps a target-module specifier to at most one local file
// under root, per the spec's module-resolution algorithm.
func (l *Loader) resolveModule(specifier string) (string, bool) {
	if l.fe.IsKnownExternal(specifier) {
		return "", false
	}

	segments := strings.Split(specifier, l.fe.ModuleSeparator())
	relPath := filepath.Join(segments...)
	ext := l.fe.FileExtensions()[0]

	// Some frontends' specifiers already carry the file extension (e.g.
	// JavaScript's "./utils.js"); don't double it up in that case.
	withExt := relPath + ext
	if hasAnyExt(relPath, l.fe.FileExtensions()) {
		withExt = relPath
	}

	fileCandidate := filepath.Join(l.root, withExt)
	if fileExists(fileCandidate) {
		return fileCandidate, true
	}

	indexCandidate := filepath.Join(l.root, relPath, l.fe.IndexBasename()+ext)
	if fileExists(indexCandidate) {
		return indexCandidate, true
	}

	return "", false
}

func hasAnyExt(path string, exts []string) bool {
	for _, ext := range exts {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// DetectLanguage maps a file extension to a language tag, per §6's table.
// Returns an UnsupportedLanguage error if the extension isn't recognized.
func DetectLanguage(path string) (string, error) {
	ext := filepath.Ext(path)
	switch ext {
	case ".rs":
		return "rust", nil
	case ".py":
		return "python", nil
	case ".js", ".mjs":
		return "javascript", nil
	default:
		return "", &trackerr.UnsupportedLanguage{Ext: ext}
	}
}
