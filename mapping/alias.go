package mapping

import (
	"fmt"

	"annotation-merger/descriptor"
	"annotation-merger/internal/diagnostic"
)

// aliasEdge is a resolved explicit alias from a local attribute to an
// attribute on a target annotation type.
type aliasEdge struct {
	target      string
	targetIndex int
}

// attrRef identifies one attribute of one annotation type, used as a key
// in the reverse alias map.
type attrRef struct {
	typeName string
	index    int
}

// resolveAliases resolves every explicit alias declaration on the node's
// type into attribute-index edges, validating each one:
//   - the target attribute must exist on the target type
//   - an attribute must not alias itself
//   - source and target must have identical kinds (array-of-X aliasing
//     scalar-X is rejected)
//
// The node's alias slice is populated in place; problems are accumulated
// as configuration diagnostics.
func resolveAliases(n *Node, resolver descriptor.TypeResolver, diags *diagnostic.Diagnostics) {
	attrs := n.typ.Attributes()
	n.aliases = make([]*aliasEdge, len(attrs))

	for i, attr := range attrs {
		if !attr.HasAlias() {
			continue
		}

		targetName := attr.Alias.Type
		if targetName == "" {
			targetName = n.typ.Name()
		}

		targetAttr := attr.Alias.Attribute
		if targetAttr == "" {
			targetAttr = attr.Name
		}

		target, ok := resolver.ResolveType(targetName)
		if !ok {
			diags.AddError("alias_target_type_unknown",
				fmt.Sprintf("attribute %q aliases unknown annotation type %q", attr.Name, targetName),
				n.typ.Name(), attr.Name)

			continue
		}

		targetIdx, ok := target.AttributeIndex(targetAttr)
		if !ok {
			diags.AddError("alias_target_missing",
				fmt.Sprintf("attribute %q aliases %s.%s which does not exist", attr.Name, targetName, targetAttr),
				n.typ.Name(), attr.Name)

			continue
		}

		if targetName == n.typ.Name() && targetIdx == i {
			diags.AddError("alias_self",
				fmt.Sprintf("attribute %q must not alias itself", attr.Name),
				n.typ.Name(), attr.Name)

			continue
		}

		if !aliasKindsCompatible(attr, target.Attributes()[targetIdx]) {
			diags.AddError("alias_kind_mismatch",
				fmt.Sprintf("attribute %q (%s) aliases %s.%s (%s) with a different kind",
					attr.Name, attr.Kind, targetName, targetAttr, target.Attributes()[targetIdx].Kind),
				n.typ.Name(), attr.Name)

			continue
		}

		n.aliases[i] = &aliasEdge{target: targetName, targetIndex: targetIdx}
	}
}

// aliasKindsCompatible accepts only identical shapes: equal kinds, and for
// nested kinds an equal element type.
func aliasKindsCompatible(a, b descriptor.Attribute) bool {
	if a.Kind != b.Kind {
		return false
	}

	if a.Kind.IsNested() {
		return a.Elem == b.Elem
	}

	return true
}
