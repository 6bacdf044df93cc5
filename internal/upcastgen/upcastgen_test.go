package upcastgeninternal

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sublee/upcastgen"
)

func parseHierarchy(t *testing.T, src string) *upcastgen.Hierarchy {
	t.Helper()
	h, err := upcastgen.Parse("x.upcast", []byte(src))
	require.NoError(t, err)
	return h
}

func TestGenerate(t *testing.T) {
	g := New("x")
	g.Add("h.upcast", parseHierarchy(t, "[] A { B { C } }"))

	assert.Equal(t, `// Code generated by github.com/sublee/upcastgen. DO NOT EDIT.

package x

// h.upcast:

// AFromC converts C to A via B.
func AFromC(in C) A {
	return AFromB(BFromC(in))
}
`, string(g.Generate()))
}

func TestGenerateNothing(t *testing.T) {
	g := New("x")
	assert.Nil(t, g.Generate())

	// Direct edges alone leave nothing to generate.
	g.Add("h.upcast", parseHierarchy(t, "[] A { B, C }"))
	assert.Nil(t, g.Generate())
}

func TestGenerateVersion(t *testing.T) {
	Version = "1.2.3"
	defer func() { Version = "" }()

	g := New("x")
	g.Add("h.upcast", parseHierarchy(t, "[] A { B { C } }"))

	code := string(g.Generate())
	assert.Contains(t, code, "// Code generated by github.com/sublee/upcastgen@1.2.3. DO NOT EDIT.\n")
}

func TestGenerateSections(t *testing.T) {
	g := New("x")
	g.Add("colors.upcast", parseHierarchy(t, "[] Color { Warm { Red } }"))
	g.Add("flat.upcast", parseHierarchy(t, "[] Flat { Direct }"))
	g.Add("shapes.upcast", parseHierarchy(t, "[] Shape { Polygon { Square } }"))

	code := string(g.Generate())

	colors := "// colors.upcast:"
	shapes := "// shapes.upcast:"
	assert.Contains(t, code, colors)
	assert.Contains(t, code, shapes)
	assert.Less(t, strings.Index(code, colors), strings.Index(code, shapes), "sections keep Add order")

	// A section deriving nothing is dropped entirely.
	assert.NotContains(t, code, "flat.upcast")
}

func TestGenerateSharedNamespace(t *testing.T) {
	// Sections share one namespace; a name taken by the first section is not
	// reissued by the second.
	g := New("x")
	g.Add("one.upcast", parseHierarchy(t, "[] A { B { C } }"))
	g.Add("two.upcast", parseHierarchy(t, "[] A { D { C } }"))

	code := string(g.Generate())
	assert.Contains(t, code, "func AFromC(in C) A {")
	assert.Contains(t, code, "func AFromC2(in C) A {")
}
