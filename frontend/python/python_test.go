package python

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestTranslateFileExternalCall(t *testing.T) {
	path := writeTemp(t, "m.py", "def main():\n    print(\"hi\")\n")

	f := New()
	ast, err := f.TranslateFile(path, "m")
	assert.NoError(t, err)
	assert.Equal(t, "m", ast.Module)
	assert.Len(t, ast.Functions, 1)

	fn := ast.Functions[0]
	assert.Equal(t, "main", fn.Name)
	assert.Equal(t, "m", fn.Module)
	assert.Len(t, fn.Calls, 1)
	assert.Equal(t, "print", fn.Calls[0].TargetName)
	assert.Equal(t, 2, fn.Calls[0].Line)
}

func TestTranslateFileNestedFunctions(t *testing.T) {
	path := writeTemp(t, "m.py", "class C:\n    def method(self):\n        def inner():\n            pass\n        inner()\n")

	f := New()
	ast, err := f.TranslateFile(path, "m")
	assert.NoError(t, err)
	assert.Len(t, ast.Functions, 2)
}

func TestExtractImportsPlainFromAndAlias(t *testing.T) {
	path := writeTemp(t, "m.py", "import os\nfrom myapp.utils import sanitize\nfrom myapp.db import query as db_query\n")

	f := New()
	imports, err := f.ExtractImports(path)
	assert.NoError(t, err)

	want := map[string]string{
		"os":       "os",
		"sanitize": "myapp.utils.sanitize",
		"db_query": "myapp.db.query",
	}
	got := map[string]string{}
	for _, imp := range imports {
		got[imp.Alias] = imp.Target
	}
	assert.Equal(t, want, got)
}

func TestIsKnownExternal(t *testing.T) {
	f := New()
	assert.True(t, f.IsKnownExternal("os"))
	assert.True(t, f.IsKnownExternal("os.path"))
	assert.False(t, f.IsKnownExternal("myapp.utils"))
}

func TestFrontendProperties(t *testing.T) {
	f := New()
	assert.Equal(t, "python", f.Language())
	assert.Equal(t, []string{".py"}, f.FileExtensions())
	assert.Equal(t, ".", f.ModuleSeparator())
	assert.Equal(t, "__init__", f.IndexBasename())
}
