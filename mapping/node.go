package mapping

import "annotation-merger/descriptor"

// Node is one occurrence of an annotation type at a given depth within the
// mapping tree rooted at some root type. Immutable once the tree is
// finalized.
type Node struct {
	tree   *Tree
	parent *Node
	depth  int
	typ    *descriptor.Type

	// source holds the literal attribute values declared on the
	// meta-annotation occurrence itself. Nil for the root node, whose
	// values are supplied per query.
	source descriptor.AttributeSource

	aliases     []*aliasEdge
	rootMapping []int
	mirrors     []*MirrorSet
}

// Tree returns the finalized tree this node belongs to.
func (n *Node) Tree() *Tree {
	return n.tree
}

// Parent returns the parent node, or nil for the root.
func (n *Node) Parent() *Node {
	return n.parent
}

// Depth returns the distance from the root (root = 0).
func (n *Node) Depth() int {
	return n.depth
}

// Type returns the annotation type descriptor of this node.
func (n *Node) Type() *descriptor.Type {
	return n.typ
}

// IsRoot reports whether this is the tree's root node.
func (n *Node) IsRoot() bool {
	return n.parent == nil
}

// Root returns the tree's root node.
func (n *Node) Root() *Node {
	return n.tree.root
}

// Source returns the declared values of the meta-annotation occurrence this
// node was built from. Nil for the root node.
func (n *Node) Source() descriptor.AttributeSource {
	return n.source
}

// Alias returns the explicit alias target for an attribute index.
func (n *Node) Alias(idx int) (targetType string, targetIndex int, ok bool) {
	if idx < 0 || idx >= len(n.aliases) || n.aliases[idx] == nil {
		return "", -1, false
	}

	e := n.aliases[idx]

	return e.target, e.targetIndex, true
}

// RootMapping returns the root attribute index an explicit alias chain
// terminates at, or -1 when the attribute has no root mapping.
func (n *Node) RootMapping(idx int) int {
	if idx < 0 || idx >= len(n.rootMapping) {
		return -1
	}

	return n.rootMapping[idx]
}

// MirrorSets returns the mirror sets of this node.
func (n *Node) MirrorSets() []*MirrorSet {
	return n.mirrors
}

// MirrorSet returns the mirror set containing the attribute index, or nil.
func (n *Node) MirrorSet(idx int) *MirrorSet {
	for _, s := range n.mirrors {
		if s.Contains(idx) {
			return s
		}
	}

	return nil
}

// ConventionMapping returns the root attribute index an attribute maps to
// by same-name convention, or -1. The convention applies only to non-root
// attributes without an explicit alias, never to the reserved primary-value
// attribute name, and only when the root declares an attribute of the same
// name.
func (n *Node) ConventionMapping(idx int) int {
	if n.IsRoot() {
		return -1
	}

	attrs := n.typ.Attributes()
	if idx < 0 || idx >= len(attrs) {
		return -1
	}

	if n.aliases[idx] != nil {
		return -1
	}

	name := attrs[idx].Name
	if name == descriptor.ValueAttribute {
		return -1
	}

	rootIdx, ok := n.tree.root.typ.AttributeIndex(name)
	if !ok {
		return -1
	}

	return rootIdx
}

// hasAncestor reports whether typeName occurs among this node's own type or
// any ancestor's type. Used as the cycle guard during construction.
func (n *Node) hasAncestor(typeName string) bool {
	for cur := n; cur != nil; cur = cur.parent {
		if cur.typ.Name() == typeName {
			return true
		}
	}

	return false
}
