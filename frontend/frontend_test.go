package frontend

import (
	"testing"

	"github.com/shivasurya/trackast/past"
	"github.com/stretchr/testify/assert"
)

type stubFrontend struct {
	lang string
	exts []string
}

func (s stubFrontend) Language() string           { return s.lang }
func (s stubFrontend) FileExtensions() []string    { return s.exts }
func (s stubFrontend) ModuleSeparator() string      { return "." }
func (s stubFrontend) IndexBasename() string        { return "index" }
func (s stubFrontend) IsKnownExternal(string) bool  { return false }
func (s stubFrontend) TranslateFile(path, mod string) (past.AbstractAST, error) {
	return past.AbstractAST{Module: mod}, nil
}
func (s stubFrontend) ExtractImports(path string) ([]Import, error) {
	return nil, nil
}

func TestRegistryLookup(t *testing.T) {
	r := NewRegistry()
	r.Register(stubFrontend{lang: "stub", exts: []string{".stub", ".stb"}})

	f, ok := r.ByLanguage("stub")
	assert.True(t, ok)
	assert.Equal(t, "stub", f.Language())

	f, ok = r.ByExtension(".stb")
	assert.True(t, ok)
	assert.Equal(t, "stub", f.Language())

	_, ok = r.ByExtension(".missing")
	assert.False(t, ok)

	_, ok = r.ByLanguage("missing")
	assert.False(t, ok)
}

func TestRegistryLaterRegistrationWins(t *testing.T) {
	r := NewRegistry()
	r.Register(stubFrontend{lang: "first", exts: []string{".x"}})
	r.Register(stubFrontend{lang: "second", exts: []string{".x"}})

	f, _ := r.ByExtension(".x")
	assert.Equal(t, "second", f.Language())
}
