// Package upcastgen generates transitive upcast conversions along a type
// hierarchy.
//
// Layered designs often wrap value types in wider ones: a SquareError is a
// kind of RectangleError, which is a kind of ShapeError, which is a kind of
// GlobalError. Converting one layer up is a one-line function, but code that
// wants to jump several layers needs one conversion per (ancestor,
// descendant) pair, and each is a mechanical composition of the single-hop
// conversions on the path. Upcastgen derives those pairs from a hierarchy
// description and generates the compositions.
//
// A description declares the layers once. Each nested block states that the
// inner type converts directly into the enclosing type:
//
//	// errors.upcast:
//	[]
//	GlobalError {
//		ShapeError {
//			CircleError,
//			RectangleError { SquareError },
//		},
//		ColorError { RedError, BlueError },
//	}
//
// The single-hop conversions are written by hand, one per edge, named after
// both endpoints:
//
//	func GlobalErrorFromShapeError(in ShapeError) GlobalError { ... }
//	func ShapeErrorFromRectangleError(in RectangleError) ShapeError { ... }
//	func RectangleErrorFromSquareError(in SquareError) RectangleError { ... }
//
// Running the upcastgen command then generates every remaining pair into
// upcast_gen.go:
//
//	// generated: (simplified)
//	func GlobalErrorFromSquareError(in SquareError) GlobalError {
//		return GlobalErrorFromShapeError(ShapeErrorFromSquareError(in))
//	}
//
// Conversions compose top-down: the body converts the value into the
// ancestor's immediate child on the path, then applies the child-to-ancestor
// hop. Generation is ordered so that whatever a body calls is either a
// direct conversion or appears earlier in the file.
//
// # Descriptions
//
// A description is one type-parameter list followed by a forest of type
// blocks. Blocks nest arbitrarily deep, separators are commas, a trailing
// comma is allowed after the last entry, and // starts a line comment. Type
// labels are opaque: qualified names, pointers, and instantiations pass
// through verbatim into the generated code, and commas inside brackets do
// not split a label, so Pair[A, B] stays one type. Labels end at a newline;
// a forgotten comma between siblings is reported as a syntax error instead
// of fusing two labels.
//
// The generator checks structure only. It never verifies that a label names
// a real type or that a direct conversion exists; a missing one surfaces as
// an ordinary compile error in the generated file.
//
// # Conversion names
//
// Names follow one scheme for both written and generated conversions:
// normalize each label by dropping bracketed segments and non-identifier
// runes ("api.Shape" becomes "ApiShape", "Tree[T]" becomes "Tree"), then
// join the two ends with "From". The hierarchy above expects
// GlobalErrorFromShapeError and generates GlobalErrorFromSquareError. If two
// generated names collide, the later one gains a numbering suffix, and its
// callers follow.
//
// # Type parameters
//
// The leading list declares type parameters shared by the whole hierarchy:
//
//	[E error]
//	GlobalError[E] {
//		ColorError[E] { RedError[E] },
//	}
//
// Every conversion, direct ones included, declares the full list verbatim,
// even where a branch does not use it, and every generated call instantiates
// explicitly:
//
//	func GlobalErrorFromRedError[E error](in RedError[E]) GlobalError[E] {
//		return GlobalErrorFromColorError[E](ColorErrorFromRedError[E](in))
//	}
//
// There is no narrowing per branch and no inference; the one list rules
// every artifact. An empty list, written [], declares none.
//
// # Running
//
// The command processes description files (.upcast) by file, directory, or
// recursive dir/... patterns, and writes one generated file per directory,
// merging multiple descriptions as separate sections:
//
//	go run github.com/sublee/upcastgen/cmd/upcastgen ./...
//
// The generated package name is taken from sibling Go files, or from the
// directory name, or from the -p flag. Output is deterministic: the same
// description always produces byte-identical code.
package upcastgen

import "strings"

// Node is one type in a hierarchy. Type is the label exactly as written in
// the description; beyond deriving a function name from it, the generator
// only ever quotes it verbatim. Children keep declaration order, which fixes
// the output order.
//
// A node has exactly one place in its hierarchy. The description syntax
// cannot express sharing or cycles, so neither is checked at runtime.
type Node struct {
	Type     string
	Children []*Node
}

// String renders the subtree in description form.
func (n *Node) String() string {
	var b strings.Builder
	n.render(&b)
	return b.String()
}

func (n *Node) render(b *strings.Builder) {
	b.WriteString(n.Type)
	if len(n.Children) == 0 {
		return
	}

	b.WriteString(" { ")
	for i, c := range n.Children {
		if i > 0 {
			b.WriteString(", ")
		}
		c.render(b)
	}
	b.WriteString(" }")
}

// Param is one group of type parameters sharing a constraint, such as
// "K, V any".
type Param struct {
	Names      []string
	Constraint string
}

// String renders the group in source form.
func (p Param) String() string {
	return strings.Join(p.Names, ", ") + " " + p.Constraint
}

// Bindings is the type-parameter list declared at the top of a description.
// The identical list applies to every generated conversion; there is no
// per-branch narrowing, reordering, or deduplication.
type Bindings struct {
	Params []Param
}

// Empty reports whether the list declares no parameters.
func (b Bindings) Empty() bool { return len(b.Params) == 0 }

// String renders the list in description form, brackets included. An empty
// list renders as "[]".
func (b Bindings) String() string {
	var s []string
	for _, p := range b.Params {
		s = append(s, p.String())
	}
	return "[" + strings.Join(s, ", ") + "]"
}

// Decl renders the list as a declaration clause for a generated function,
// or "" when empty.
func (b Bindings) Decl() string {
	if b.Empty() {
		return ""
	}
	return b.String()
}

// Args renders the list as an explicit instantiation clause carrying every
// parameter name, or "" when empty.
func (b Bindings) Args() string {
	if b.Empty() {
		return ""
	}
	var names []string
	for _, p := range b.Params {
		names = append(names, p.Names...)
	}
	return "[" + strings.Join(names, ", ") + "]"
}

// Hierarchy is one parsed description: the shared binding list and a forest
// of root nodes. It is immutable once parsed.
type Hierarchy struct {
	Bindings Bindings
	Roots    []*Node
}

// String renders the hierarchy in description form on one line.
func (h *Hierarchy) String() string {
	var b strings.Builder
	b.WriteString(h.Bindings.String())
	for i, root := range h.Roots {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString(" ")
		b.WriteString(root.String())
	}
	return b.String()
}
