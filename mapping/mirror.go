package mapping

import (
	"fmt"

	"annotation-merger/descriptor"
	"annotation-merger/internal/diagnostic"
)

// MirrorSet groups attributes of one annotation type that reciprocally
// alias each other. All members must agree on their declared value for any
// concrete occurrence; the set resolves which member supplies the
// authoritative value.
type MirrorSet struct {
	typ     *descriptor.Type
	members []int // attribute indices in declaration order
}

// Type returns the annotation type owning this mirror set.
func (s *MirrorSet) Type() *descriptor.Type {
	return s.typ
}

// Members returns the member attribute indices in declaration order.
func (s *MirrorSet) Members() []int {
	return s.members
}

// Contains reports whether the attribute index belongs to this set.
func (s *MirrorSet) Contains(idx int) bool {
	for _, m := range s.members {
		if m == idx {
			return true
		}
	}

	return false
}

// Resolve returns the index of the member that supplies the authoritative
// value for the given declared values. With no non-default member the first
// member wins; with exactly one it wins; with several they must agree or a
// ConflictError is returned. Pure and deterministic.
func (s *MirrorSet) Resolve(src descriptor.AttributeSource) (int, error) {
	if src == nil {
		src = descriptor.MapSource(nil)
	}

	attrs := s.typ.Attributes()
	canonical := -1

	var canonicalValue any

	for _, m := range s.members {
		attr := attrs[m]

		v, ok := src.Get(attr.Name)
		if !ok || descriptor.IsDefault(attr, v) {
			continue
		}

		if canonical < 0 {
			canonical = m
			canonicalValue = v

			continue
		}

		if !descriptor.Equal(canonicalValue, v) {
			return -1, &ConflictError{
				Type:   s.typ.Name(),
				AttrA:  attrs[canonical].Name,
				AttrB:  attr.Name,
				ValueA: canonicalValue,
				ValueB: v,
			}
		}
	}

	if canonical < 0 {
		return s.members[0], nil
	}

	return canonical, nil
}

// buildMirrorSets detects reciprocal same-type alias cycles on one node and
// validates each resulting set: members must share a declared default and
// structurally compatible kinds.
func buildMirrorSets(n *Node, diags *diagnostic.Diagnostics) []*MirrorSet {
	attrs := n.typ.Attributes()
	assigned := make([]bool, len(attrs))

	var sets []*MirrorSet

	for i := range attrs {
		if assigned[i] {
			continue
		}

		cycle := sameTypeCycle(n, i)
		if len(cycle) < 2 {
			continue
		}

		members := make([]int, 0, len(cycle))

		for j := range attrs {
			if cycle[j] {
				members = append(members, j)
				assigned[j] = true
			}
		}

		set := &MirrorSet{typ: n.typ, members: members}
		validateMirrorSet(set, diags)
		sets = append(sets, set)
	}

	return sets
}

// sameTypeCycle follows alias edges confined to the node's own type
// starting at attribute start. It returns the membership of the cycle
// through start, or nil if the chain leaves the type or never returns.
func sameTypeCycle(n *Node, start int) map[int]bool {
	seen := map[int]bool{start: true}
	cur := start

	for {
		edge := n.aliases[cur]
		if edge == nil || edge.target != n.typ.Name() {
			return nil
		}

		next := edge.targetIndex
		if next == start {
			return seen
		}

		if seen[next] {
			// Cycle exists but does not pass through start.
			return nil
		}

		seen[next] = true
		cur = next
	}
}

// validateMirrorSet checks the mirror invariants: every member declares the
// same default value and all kinds are compatible (equal, or one the array
// form of the other's element kind).
func validateMirrorSet(set *MirrorSet, diags *diagnostic.Diagnostics) {
	attrs := set.typ.Attributes()
	first := attrs[set.members[0]]

	for _, m := range set.members {
		if attr := attrs[m]; !attr.HasDefault() {
			diags.AddError("mirror_default_missing",
				fmt.Sprintf("mirrored attribute %q must declare a default value", attr.Name),
				set.typ.Name(), attr.Name)
		}
	}

	for _, m := range set.members[1:] {
		attr := attrs[m]

		if !first.HasDefault() || !attr.HasDefault() {
			continue
		}

		if !descriptor.Equal(first.Default, attr.Default) {
			diags.AddError("mirror_default_mismatch",
				fmt.Sprintf("mirrored attributes %q and %q declare different default values", first.Name, attr.Name),
				set.typ.Name(), attr.Name)
		}

		if !mirrorKindsCompatible(first, attr) {
			diags.AddError("mirror_kind_mismatch",
				fmt.Sprintf("mirrored attributes %q (%s) and %q (%s) have incompatible kinds",
					first.Name, first.Kind, attr.Name, attr.Kind),
				set.typ.Name(), attr.Name)
		}
	}
}

// mirrorKindsCompatible reports whether two mirror members have equal
// kinds, or one is the array form of the other's kind.
func mirrorKindsCompatible(a, b descriptor.Attribute) bool {
	if a.Kind == b.Kind {
		return !a.Kind.IsNested() || a.Elem == b.Elem
	}

	if a.Kind.Array() == b.Kind || b.Kind.Array() == a.Kind {
		if a.Kind.IsNested() || b.Kind.IsNested() {
			return a.Elem == b.Elem
		}

		return true
	}

	return false
}
