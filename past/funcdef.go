package past

// FunctionDef is a function as seen in one module: its simple name,
// signature, owning module path, and the ordered calls it makes.
type FunctionDef struct {
	Name      string
	Signature Signature
	Module    string
	Calls     []FunctionCall
}

// Equal reports whether two FunctionDefs are identical in all four fields:
// name, signature, module, and call list (by value, in order).
func (f FunctionDef) Equal(other FunctionDef) bool {
	if f.Name != other.Name || f.Module != other.Module {
		return false
	}
	if !f.Signature.Equal(other.Signature) {
		return false
	}
	if len(f.Calls) != len(other.Calls) {
		return false
	}
	for i, c := range f.Calls {
		if c != other.Calls[i] {
			return false
		}
	}
	return true
}

// ID returns the FunctionId for this definition: module::name::signature.
func (f FunctionDef) ID() ID {
	return GenerateID(f.Module, f.Name, f.Signature)
}

// AbstractAST is the translation of exactly one source file: its module
// path (see the loader for derivation) and the ordered function
// definitions found in it, at any nesting depth. Within one AbstractAST no
// two FunctionDefs may share both name and signature — TranslateFile
// implementations are responsible for that invariant.
type AbstractAST struct {
	Module    string
	Functions []FunctionDef
}

// Merge concatenates a sequence of per-file AbstractASTs, in the order
// given, without deduplication — duplicate-ID detection happens in
// callgraph.Build, not in this data type or the loader.
func Merge(asts []AbstractAST) []FunctionDef {
	var out []FunctionDef
	for _, a := range asts {
		out = append(out, a.Functions...)
	}
	return out
}
