package upcastgen

import "slices"

// Conv is one transitive conversion to generate: Descendant converts into
// Ancestor by first converting into Via, the immediate child of Ancestor on
// the path between them. Path holds the whole chain, ancestor first, so
// Path[0] == Ancestor, Path[1] == Via, and Path[len(Path)-1] == Descendant
// with len(Path) >= 3.
type Conv struct {
	Ancestor   *Node
	Via        *Node
	Descendant *Node
	Path       []*Node
}

// Derive returns every conversion the hierarchy leaves to the generator: one
// Conv per (ancestor, descendant) pair at tree distance two or more.
// Distance-one pairs are the direct conversions written by hand and never
// appear. Derive does not mutate the hierarchy; calling it again yields an
// equal slice over the same nodes.
//
// The order is deterministic and makes each conversion well-founded: all
// pairs inside a subtree come before the pairs whose ancestor is the
// subtree's parent, and within one child block, pairs reaching deeper
// descendants come before the pair reaching the enclosing child itself. A
// body therefore only ever calls a direct conversion or a conversion emitted
// earlier.
func (h *Hierarchy) Derive() []Conv {
	var convs []Conv
	for _, root := range h.Roots {
		convs = deriveNode(convs, root)
	}
	return convs
}

// deriveNode appends every pair whose ancestor lies in the subtree rooted at
// n, descendants' subtrees first.
func deriveNode(convs []Conv, n *Node) []Conv {
	for _, c := range n.Children {
		convs = deriveNode(convs, c)
	}
	for _, c := range n.Children {
		convs = deriveUnder(convs, []*Node{n, c}, c.Children)
	}
	return convs
}

// deriveUnder appends one pair per node under chain, where chain runs from
// the ancestor down to the parent of nodes. Each node's own subtree is
// exhausted before the node's pair is appended.
func deriveUnder(convs []Conv, chain []*Node, nodes []*Node) []Conv {
	for _, n := range nodes {
		path := append(slices.Clip(chain), n)
		convs = deriveUnder(convs, path, n.Children)
		convs = append(convs, Conv{
			Ancestor:   path[0],
			Via:        path[1],
			Descendant: n,
			Path:       path,
		})
	}
	return convs
}
