package encode

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDOT_Shape(t *testing.T) {
	g := buildSample(t)
	dot := string(EncodeDOT(g))

	assert.True(t, strings.HasPrefix(dot, "digraph CallGraph {\n"))
	assert.True(t, strings.HasSuffix(dot, "}\n"))
	assert.Contains(t, dot, `shape=box`)
	assert.Contains(t, dot, `shape=ellipse, style=dashed`)
	assert.Contains(t, dot, `[label="L2"]`)
	assert.Contains(t, dot, `[label="L3"]`)
}

func TestEncodeDOT_QuotesFunctionIds(t *testing.T) {
	g := buildSample(t)
	dot := string(EncodeDOT(g))
	assert.Contains(t, dot, `"f::a::() -> ()"`)
}

func TestEncodeDOT_Deterministic(t *testing.T) {
	g := buildSample(t)
	first := string(EncodeDOT(g))
	second := string(EncodeDOT(g))
	assert.Equal(t, first, second)
}
