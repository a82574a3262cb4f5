package mapping

import (
	"fmt"

	"annotation-merger/descriptor"
	"annotation-merger/internal/common"
	"annotation-merger/internal/diagnostic"
)

// Builder constructs mapping trees from the descriptor ports. Construction
// is pure CPU work over immutable inputs and may run on any goroutine.
type Builder struct {
	resolver descriptor.TypeResolver
	supplier descriptor.MetaSupplier
	filter   Filter
}

// NewBuilder creates a Builder. A nil filter excludes nothing.
func NewBuilder(resolver descriptor.TypeResolver, supplier descriptor.MetaSupplier, filter Filter) *Builder {
	if filter == nil {
		filter = ExcludeNone()
	}

	return &Builder{
		resolver: resolver,
		supplier: supplier,
		filter:   filter,
	}
}

// Filter returns the builder's exclusion filter.
func (b *Builder) Filter() Filter {
	return b.filter
}

// Build constructs and finalizes the mapping tree for a root annotation
// type. Structural problems are collected and returned as a single
// ConfigError; a returned tree is always fully validated.
func (b *Builder) Build(rootType string) (*Tree, error) {
	var diags diagnostic.Diagnostics

	rt, ok := b.resolver.ResolveType(rootType)
	if !ok {
		diags.AddError("root_type_unknown",
			fmt.Sprintf("annotation type %q is not resolvable", rootType), rootType, "")

		return nil, &ConfigError{Root: rootType, Diags: diags}
	}

	tree := &Tree{
		byType:    make(map[string]*Node),
		filterKey: b.filter.Key(),
	}
	tree.root = &Node{tree: tree, typ: rt}
	tree.add(tree.root)

	queue := []*Node{tree.root}

	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]

		for _, occ := range b.supplier.MetaAnnotations(n.typ.Name()) {
			queue = append(queue, b.expandOccurrence(tree, n, occ, &diags)...)
		}
	}

	for _, n := range tree.nodes {
		resolveAliases(n, b.resolver, &diags)
	}

	for _, n := range tree.nodes {
		n.mirrors = buildMirrorSets(n, &diags)
	}

	b.finalize(tree, &diags)

	if diags.HasErrors() {
		return nil, &ConfigError{Root: rootType, Diags: diags}
	}

	return tree, nil
}

// expandOccurrence turns one meta-annotation occurrence into child nodes:
// none when filtered or cyclic, several when the occurrence is a
// repeatable container, one otherwise.
func (b *Builder) expandOccurrence(
	tree *Tree,
	parent *Node,
	occ descriptor.Occurrence,
	diags *diagnostic.Diagnostics,
) []*Node {
	if b.filter.Excludes(occ.Type) {
		return nil
	}

	if parent.hasAncestor(occ.Type) {
		return nil
	}

	mt, ok := b.resolver.ResolveType(occ.Type)
	if !ok {
		diags.AddError("meta_type_unknown",
			fmt.Sprintf("meta-annotation type %q on %q is not resolvable", occ.Type, parent.typ.Name()),
			parent.typ.Name(), "")

		return nil
	}

	elem := b.containerElement(mt)
	if elem == nil {
		child := newChild(tree, parent, mt, occ.Source)
		return []*Node{child}
	}

	if b.filter.Excludes(elem.Name()) || parent.hasAncestor(elem.Name()) {
		return nil
	}

	return b.expandContainer(tree, parent, mt, elem, occ.Source, diags)
}

// expandContainer creates one child node per contained element of a
// repeatable container occurrence.
func (b *Builder) expandContainer(
	tree *Tree,
	parent *Node,
	container, elem *descriptor.Type,
	src descriptor.AttributeSource,
	diags *diagnostic.Diagnostics,
) []*Node {
	if src == nil {
		return nil
	}

	raw, ok := src.Get(descriptor.ValueAttribute)
	if !ok {
		return nil
	}

	elements, ok := raw.([]any)
	if !ok {
		diags.AddWarning("container_value_shape",
			fmt.Sprintf("container %q declares a non-array value", container.Name()),
			container.Name(), descriptor.ValueAttribute)

		return nil
	}

	children := make([]*Node, 0, len(elements))

	for _, el := range elements {
		var elSrc descriptor.AttributeSource

		switch v := el.(type) {
		case descriptor.AttributeSource:
			elSrc = v
		case map[string]any:
			elSrc = descriptor.MapSource(v)
		case nil:
			elSrc = descriptor.MapSource(nil)
		default:
			diags.AddWarning("container_element_shape",
				fmt.Sprintf("container %q holds an element that is not an annotation value", container.Name()),
				container.Name(), descriptor.ValueAttribute)

			continue
		}

		children = append(children, newChild(tree, parent, elem, elSrc))
	}

	return children
}

// containerElement reports whether t follows the repeatable-container
// convention: exactly one annotation-array attribute named by the reserved
// primary-value name, holding a type declared repeatable. Returns the
// element type, or nil.
func (b *Builder) containerElement(t *descriptor.Type) *descriptor.Type {
	attrs := t.Attributes()
	if !common.IsSingle(attrs) {
		return nil
	}

	attr := attrs[0]
	if attr.Name != descriptor.ValueAttribute || attr.Kind != descriptor.KindAnnotationArray {
		return nil
	}

	elem, ok := b.resolver.ResolveType(attr.Elem)
	if !ok || !elem.Repeatable() {
		return nil
	}

	return elem
}

func newChild(tree *Tree, parent *Node, typ *descriptor.Type, src descriptor.AttributeSource) *Node {
	if src == nil {
		src = descriptor.MapSource(nil)
	}

	child := &Node{
		tree:   tree,
		parent: parent,
		depth:  parent.depth + 1,
		typ:    typ,
		source: src,
	}
	tree.add(child)

	return child
}

// finalize runs the whole-tree validation pass: every explicit alias must
// be claimed by a type genuinely present in the tree, and alias chains are
// collapsed into per-attribute root mappings.
func (b *Builder) finalize(tree *Tree, diags *diagnostic.Diagnostics) {
	for _, n := range tree.nodes {
		for i, e := range n.aliases {
			if e == nil {
				continue
			}

			if !tree.Contains(e.target) {
				diags.AddError("alias_not_meta_present",
					fmt.Sprintf("attribute %q aliases %s.%s but %q never appears in the hierarchy of %q",
						n.typ.Attributes()[i].Name, e.target, tree.byTypeAttrName(e), e.target, tree.root.typ.Name()),
					n.typ.Name(), n.typ.Attributes()[i].Name)
			}
		}
	}

	if diags.HasErrors() {
		return
	}

	for _, n := range tree.nodes {
		n.rootMapping = collapseAliasChains(tree, n, diags)
	}

	claimRootAliases(tree, diags)
}

// byTypeAttrName renders the attribute name an edge targets, tolerating
// target types absent from the tree.
func (t *Tree) byTypeAttrName(e *aliasEdge) string {
	if n, ok := t.byType[e.target]; ok {
		return n.typ.Attributes()[e.targetIndex].Name
	}

	return fmt.Sprintf("#%d", e.targetIndex)
}

// collapseAliasChains follows each of the node's own explicit alias edges
// transitively and records the root attribute index the chain terminates
// at, or -1. This covers aliases declared on meta types that target the
// root type. Cycles confined to one type are mirror sets and terminate
// silently; cycles spanning types are configuration errors.
func collapseAliasChains(tree *Tree, n *Node, diags *diagnostic.Diagnostics) []int {
	rootName := tree.root.typ.Name()
	result := make([]int, len(n.aliases))

	for i := range result {
		result[i] = -1
	}

	if n.IsRoot() {
		// The root always answers from its own declared values.
		return result
	}

	for i, e := range n.aliases {
		if e == nil {
			continue
		}

		visited := map[attrRef]bool{{typeName: n.typ.Name(), index: i}: true}
		cur := attrRef{typeName: e.target, index: e.targetIndex}

		for {
			if cur.typeName == rootName {
				result[i] = cur.index
				break
			}

			if visited[cur] {
				if !singleType(visited, cur) {
					diags.AddError("alias_cycle",
						fmt.Sprintf("attribute %q participates in an alias cycle spanning annotation types",
							n.typ.Attributes()[i].Name),
						n.typ.Name(), n.typ.Attributes()[i].Name)
				}

				break
			}

			visited[cur] = true

			next, ok := tree.byType[cur.typeName]
			if !ok {
				break
			}

			edge := next.aliases[cur.index]
			if edge == nil {
				break
			}

			cur = attrRef{typeName: edge.target, index: edge.targetIndex}
		}
	}

	return result
}

// claimRootAliases walks the transitive alias closure of every root
// attribute and records the root attribute index on each attribute the
// chain passes through. This covers aliases declared on the root type that
// target meta types: every claimed attribute answers from the root
// occurrence, however deep its node sits.
func claimRootAliases(tree *Tree, diags *diagnostic.Diagnostics) {
	root := tree.root
	rootName := root.typ.Name()

	for k, e := range root.aliases {
		if e == nil || e.target == rootName {
			// Same-type edges at the root are mirror edges.
			continue
		}

		visited := map[attrRef]bool{}
		cur := attrRef{typeName: e.target, index: e.targetIndex}

		for cur.typeName != rootName && !visited[cur] {
			visited[cur] = true

			assignRootMapping(tree, cur, k, diags)

			next, ok := tree.byType[cur.typeName]
			if !ok {
				break
			}

			edge := next.aliases[cur.index]
			if edge == nil {
				break
			}

			cur = attrRef{typeName: edge.target, index: edge.targetIndex}
		}
	}
}

// assignRootMapping records root attribute k as the merged source for one
// claimed attribute on every node of its type. Competing claims are
// accepted only between root mirror siblings, whose merged values agree by
// construction.
func assignRootMapping(tree *Tree, ref attrRef, k int, diags *diagnostic.Diagnostics) {
	root := tree.root

	for _, n := range tree.nodes {
		if n.typ.Name() != ref.typeName {
			continue
		}

		existing := n.rootMapping[ref.index]
		if existing == k {
			continue
		}

		if existing >= 0 {
			set := root.MirrorSet(existing)
			if set == nil || !set.Contains(k) {
				diags.AddError("alias_ambiguous",
					fmt.Sprintf("attribute %s.%s is claimed by unrelated root attributes %q and %q",
						ref.typeName, n.typ.Attributes()[ref.index].Name,
						root.typ.Attributes()[existing].Name, root.typ.Attributes()[k].Name),
					ref.typeName, n.typ.Attributes()[ref.index].Name)
			}

			continue
		}

		n.rootMapping[ref.index] = k
	}
}

// singleType reports whether every visited reference plus cur share one
// annotation type.
func singleType(visited map[attrRef]bool, cur attrRef) bool {
	for ref := range visited {
		if ref.typeName != cur.typeName {
			return false
		}
	}

	return true
}
