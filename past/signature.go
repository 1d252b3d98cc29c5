// Package past holds the language-neutral Abstract AST model: signatures,
// call sites, function definitions, and the per-file AbstractAST they
// compose into. Frontends build these; the loader merges them; the
// callgraph package consumes them.
package past

import "strings"

// Param is a single (name, type) pair in a Signature. Name may be empty
// when the source language's call or definition syntax does not carry one.
type Param struct {
	Name string
	Type string
}

// Signature is the ordered parameter list plus return type of a function,
// stored as verbatim source-language text. Generic parameters are kept
// literally (Vec<T> stays Vec<T>) — no monomorphization.
type Signature struct {
	Params     []Param
	ReturnType string
}

// Equal reports whether two signatures are byte-identical: same parameter
// sequence (name and type) and same return type string.
func (s Signature) Equal(other Signature) bool {
	if s.ReturnType != other.ReturnType {
		return false
	}
	if len(s.Params) != len(other.Params) {
		return false
	}
	for i, p := range s.Params {
		if p != other.Params[i] {
			return false
		}
	}
	return true
}

// Display renders the canonical form used in FunctionId and in human
// output: "(p1: T1, p2: T2) -> R". A parameter with no name emits only its
// type.
func (s Signature) Display() string {
	var b strings.Builder
	b.WriteByte('(')
	for i, p := range s.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		if p.Name != "" {
			b.WriteString(p.Name)
			b.WriteString(": ")
		}
		b.WriteString(p.Type)
	}
	b.WriteString(") -> ")
	if s.ReturnType == "" {
		b.WriteString("()")
	} else {
		b.WriteString(s.ReturnType)
	}
	return b.String()
}

// EmptySignature is the zero-arity, no-return signature; its Display is
// "() -> ()". Synthesized external nodes do not use it: their ids carry the
// shorter "()" marker (see ExternalID).
func EmptySignature() Signature {
	return Signature{}
}
