package past

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateID(t *testing.T) {
	sig := Signature{Params: []Param{{Name: "x", Type: "int"}}, ReturnType: "bool"}
	id := GenerateID("f", "a", sig)
	assert.Equal(t, ID("f::a::(x: int) -> bool"), id)
}

func TestGenerateIDPure(t *testing.T) {
	sig := Signature{ReturnType: "void"}
	a := GenerateID("pkg.mod", "run", sig)
	b := GenerateID("pkg.mod", "run", sig)
	assert.Equal(t, a, b)
}

func TestExternalID(t *testing.T) {
	assert.Equal(t, ID("<external>::print::()"), ExternalID("print"))
}

func TestIsExternalModule(t *testing.T) {
	assert.True(t, IsExternalModule("<external>"))
	assert.False(t, IsExternalModule("f"))
}

func TestFunctionDefEqual(t *testing.T) {
	f1 := FunctionDef{Name: "a", Module: "m", Signature: EmptySignature()}
	f2 := FunctionDef{Name: "a", Module: "m", Signature: EmptySignature()}
	f3 := FunctionDef{Name: "a", Module: "m", Signature: EmptySignature(), Calls: []FunctionCall{{TargetName: "b", Line: 1}}}

	assert.True(t, f1.Equal(f2))
	assert.False(t, f1.Equal(f3))
}

func TestFunctionDefID(t *testing.T) {
	f := FunctionDef{Name: "a", Module: "f", Signature: EmptySignature()}
	assert.Equal(t, ID("f::a::() -> ()"), f.ID())
}

func TestMerge(t *testing.T) {
	a1 := AbstractAST{Module: "a", Functions: []FunctionDef{{Name: "x", Module: "a"}}}
	a2 := AbstractAST{Module: "b", Functions: []FunctionDef{{Name: "y", Module: "b"}}}

	merged := Merge([]AbstractAST{a1, a2})
	assert.Len(t, merged, 2)
	assert.Equal(t, "x", merged[0].Name)
	assert.Equal(t, "y", merged[1].Name)
}

func TestFunctionCallHasTargetModule(t *testing.T) {
	assert.True(t, FunctionCall{TargetModule: "m"}.HasTargetModule())
	assert.False(t, FunctionCall{}.HasTargetModule())
}
