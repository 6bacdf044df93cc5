package emit_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sublee/upcastgen"
	"github.com/sublee/upcastgen/internal/emit"
)

func writeAll(t *testing.T, h *upcastgen.Hierarchy) string {
	t.Helper()

	namer := emit.NewNamer(emit.NewNS())
	namer.ReserveDirect(h.Roots)

	var buf bytes.Buffer
	for i, conv := range h.Derive() {
		if i > 0 {
			buf.WriteString("\n")
		}
		emit.WriteConv(&buf, namer, h.Bindings, conv)
	}
	return buf.String()
}

func TestWriteConv(t *testing.T) {
	h, err := upcastgen.Parse("x.upcast", []byte("[] A { B { C } }"))
	require.NoError(t, err)

	assert.Equal(t, `// AFromC converts C to A via B.
func AFromC(in C) A {
	return AFromB(BFromC(in))
}
`, writeAll(t, h))
}

func TestWriteConvBindings(t *testing.T) {
	h, err := upcastgen.Parse("x.upcast", []byte("[T any] Box[T] { Crate[T] { Sock[T] } }"))
	require.NoError(t, err)

	assert.Equal(t, `// BoxFromSock converts Sock[T] to Box[T] via Crate[T].
func BoxFromSock[T any](in Sock[T]) Box[T] {
	return BoxFromCrate[T](CrateFromSock[T](in))
}
`, writeAll(t, h))
}

func TestWriteConvChained(t *testing.T) {
	h, err := upcastgen.Parse("x.upcast", []byte("[] A { B { C { D } } }"))
	require.NoError(t, err)

	// The four-hop pair calls the generated two-hop pair by name.
	assert.Equal(t, `// BFromD converts D to B via C.
func BFromD(in D) B {
	return BFromC(CFromD(in))
}

// AFromD converts D to A via B.
func AFromD(in D) A {
	return AFromB(BFromD(in))
}

// AFromC converts C to A via B.
func AFromC(in C) A {
	return AFromB(BFromC(in))
}
`, writeAll(t, h))
}

func TestWriteConvCollision(t *testing.T) {
	// The second root's direct edge already owns the name AFromC, so the
	// generated conversion is renamed and its caller follows the rename.
	h, err := upcastgen.Parse("x.upcast", []byte("[] W { A { B { C } } }, A { C }"))
	require.NoError(t, err)

	code := writeAll(t, h)
	assert.Contains(t, code, "func AFromC2(in C) A {")
	assert.Contains(t, code, "return WFromA(AFromC2(in))")
	assert.NotContains(t, code, "func AFromC(")
}

func TestNamerResolveDirect(t *testing.T) {
	h, err := upcastgen.Parse("x.upcast", []byte("[] A { B { C } }"))
	require.NoError(t, err)

	namer := emit.NewNamer(emit.NewNS())
	namer.ReserveDirect(h.Roots)

	a := h.Roots[0]
	b := a.Children[0]
	assert.Equal(t, "AFromB", namer.Resolve(a, b))
}
