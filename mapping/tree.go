package mapping

import "annotation-merger/descriptor"

// Tree is the complete, finalized collection of mapping nodes reachable
// from one root annotation type. Immutable and safe to share across
// goroutines.
type Tree struct {
	root      *Node
	nodes     []*Node
	byType    map[string]*Node
	filterKey string
}

// Root returns the root node.
func (t *Tree) Root() *Node {
	return t.root
}

// Nodes returns all nodes in breadth-first construction order.
func (t *Tree) Nodes() []*Node {
	return t.nodes
}

// NodeOf returns the shallowest node of the given annotation type.
func (t *Tree) NodeOf(typeName string) (*Node, bool) {
	n, ok := t.byType[typeName]
	return n, ok
}

// Contains reports whether the tree holds a node of the given type.
func (t *Tree) Contains(typeName string) bool {
	_, ok := t.byType[typeName]
	return ok
}

// RootType returns the root annotation type descriptor.
func (t *Tree) RootType() *descriptor.Type {
	return t.root.typ
}

// FilterKey returns the key of the exclusion filter the tree was built
// with.
func (t *Tree) FilterKey() string {
	return t.filterKey
}

func (t *Tree) add(n *Node) {
	t.nodes = append(t.nodes, n)

	// Breadth-first order makes the first node per type the shallowest.
	if _, ok := t.byType[n.typ.Name()]; !ok {
		t.byType[n.typ.Name()] = n
	}
}
