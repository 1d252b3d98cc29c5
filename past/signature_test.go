package past

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignatureEqual(t *testing.T) {
	a := Signature{Params: []Param{{Name: "x", Type: "int"}}, ReturnType: "bool"}
	b := Signature{Params: []Param{{Name: "x", Type: "int"}}, ReturnType: "bool"}
	c := Signature{Params: []Param{{Name: "y", Type: "int"}}, ReturnType: "bool"}

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(Signature{Params: []Param{{Name: "x", Type: "int"}}, ReturnType: "int"}))
}

func TestSignatureEqualDifferentLength(t *testing.T) {
	a := Signature{Params: []Param{{Name: "x", Type: "int"}}}
	b := Signature{}
	assert.False(t, a.Equal(b))
}

func TestSignatureDisplay(t *testing.T) {
	tests := []struct {
		name string
		sig  Signature
		want string
	}{
		{
			name: "named params with return",
			sig: Signature{
				Params:     []Param{{Name: "p1", Type: "T1"}, {Name: "p2", Type: "T2"}},
				ReturnType: "R",
			},
			want: "(p1: T1, p2: T2) -> R",
		},
		{
			name: "unnamed param",
			sig:  Signature{Params: []Param{{Type: "int"}}, ReturnType: "void"},
			want: "(int) -> void",
		},
		{
			name: "no params no return",
			sig:  Signature{},
			want: "() -> ()",
		},
		{
			name: "generic type preserved literally",
			sig:  Signature{Params: []Param{{Name: "xs", Type: "Vec<T>"}}, ReturnType: "Vec<T>"},
			want: "(xs: Vec<T>) -> Vec<T>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.sig.Display())
		})
	}
}

func TestEmptySignature(t *testing.T) {
	assert.Equal(t, "() -> ()", EmptySignature().Display())
}
