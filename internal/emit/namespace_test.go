package emit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sublee/upcastgen/internal/emit"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		label string
		want  string
	}{
		{"Shape", "Shape"},
		{"api.Shape", "ApiShape"},
		{"*rich.Error", "RichError"},
		{"Tree[T]", "Tree"},
		{"GlobalError[E]", "GlobalError"},
		{"Pair[K, V]", "Pair"},
		{"URLError", "URLError"},
		{"shape", "Shape"},
		{"New(int)", "New"},
		{"a-b", "AB"},
		{"123", "X123"},
		{"***", "X"},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			assert.Equal(t, tt.want, emit.NormalizeName(tt.label))
		})
	}
}

func TestFuncName(t *testing.T) {
	assert.Equal(t, "AFromB", emit.FuncName("A", "B"))
	assert.Equal(t, "GlobalErrorFromSquareError", emit.FuncName("GlobalError[E]", "SquareError"))
	assert.Equal(t, "ApiShapeFromApiSquare", emit.FuncName("api.Shape", "*api.Square"))
}

func TestDisambiguateName(t *testing.T) {
	first := func(name string, n int) []string {
		var names []string
		for name := range emit.DisambiguateName(name) {
			names = append(names, name)
			if len(names) == n {
				break
			}
		}
		return names
	}

	assert.Equal(t, []string{"AFromB", "AFromB2", "AFromB3"}, first("AFromB", 3))
	assert.Equal(t, []string{"Conv2", "Conv2_2", "Conv2_3"}, first("Conv2", 3))
}

func TestNSName(t *testing.T) {
	ns := emit.NewNS()

	assert.Equal(t, "AFromB", ns.Name("AFromB"))
	assert.Equal(t, "AFromB2", ns.Name("AFromB"))
	assert.Equal(t, "AFromB3", ns.Name("AFromB"))

	assert.True(t, ns.Reserve("AFromC"))
	assert.False(t, ns.Reserve("AFromC"))
	assert.Equal(t, "AFromC2", ns.Name("AFromC"))
}
