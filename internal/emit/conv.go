package emit

import (
	"fmt"
	"io"

	"github.com/sublee/upcastgen"
)

// FuncName returns the conversion function name for a destination and source
// label. Hand-written direct conversions follow the same scheme, which is
// what lets generated compositions call them.
func FuncName(dst, src string) string {
	return NormalizeName(dst) + "From" + NormalizeName(src)
}

// Namer allocates names for generated conversions and resolves the names
// their bodies call. Allocations are recorded per (ancestor, descendant)
// node pair: once a conversion's name is disambiguated, later callers must
// use the disambiguated name, not the scheme's.
type Namer struct {
	ns    NS
	named map[[2]*upcastgen.Node]string
}

// NewNamer creates a Namer allocating from ns.
func NewNamer(ns NS) *Namer {
	return &Namer{ns: ns, named: make(map[[2]*upcastgen.Node]string)}
}

// ReserveDirect reserves the direct-conversion name of every edge in the
// forest, keeping generated names clear of the hand-written ones.
func (nr *Namer) ReserveDirect(roots []*upcastgen.Node) {
	for _, root := range roots {
		nr.reserveDirect(root)
	}
}

func (nr *Namer) reserveDirect(parent *upcastgen.Node) {
	for _, child := range parent.Children {
		nr.ns.Reserve(FuncName(parent.Type, child.Type))
		nr.reserveDirect(child)
	}
}

// Define allocates the name for one conversion and records it for later
// lookups.
func (nr *Namer) Define(c upcastgen.Conv) string {
	name := nr.ns.Name(FuncName(c.Ancestor.Type, c.Descendant.Type))
	nr.named[[2]*upcastgen.Node{c.Ancestor, c.Descendant}] = name
	return name
}

// Resolve returns the name to call for converting src into dst: the recorded
// name if the pair was generated, the direct scheme otherwise.
func (nr *Namer) Resolve(dst, src *upcastgen.Node) string {
	if name, ok := nr.named[[2]*upcastgen.Node{dst, src}]; ok {
		return name
	}
	return FuncName(dst.Type, src.Type)
}

// WriteConv writes the definition of one conversion: a doc comment and a
// function composing the two hops. The namer must already hold every deeper
// conversion the body refers to; derivation order guarantees that.
func WriteConv(w io.Writer, nr *Namer, bindings upcastgen.Bindings, c upcastgen.Conv) {
	name := nr.Define(c)
	outer := nr.Resolve(c.Ancestor, c.Via)
	inner := nr.Resolve(c.Via, c.Descendant)
	args := bindings.Args()

	fmt.Fprintf(w, "// %s converts %s to %s via %s.\n", name, c.Descendant.Type, c.Ancestor.Type, c.Via.Type)
	fmt.Fprintf(w, "func %s%s(in %s) %s {\n", name, bindings.Decl(), c.Descendant.Type, c.Ancestor.Type)
	fmt.Fprintf(w, "\treturn %s%s(%s%s(in))\n", outer, args, inner, args)
	fmt.Fprintf(w, "}\n")
}
