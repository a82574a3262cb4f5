package merged

import (
	"annotation-merger/descriptor"
	"annotation-merger/mapping"
)

// View answers merged-value queries for one mapping node against the
// declared values of a concrete root occurrence.
type View struct {
	node   *mapping.Node
	source descriptor.AttributeSource
	// allowed restricts the visible attribute names; nil allows all.
	allowed func(name string) bool
}

// NewView creates a view over a mapping node and the root occurrence's
// declared values. A nil source declares nothing.
func NewView(node *mapping.Node, source descriptor.AttributeSource) *View {
	if source == nil {
		source = descriptor.MapSource(nil)
	}

	return &View{node: node, source: source}
}

// Node returns the underlying mapping node.
func (v *View) Node() *mapping.Node {
	return v.node
}

// Type returns the annotation type this view answers queries for.
func (v *View) Type() *descriptor.Type {
	return v.node.Type()
}

// Filter returns a view restricted to attribute names accepted by the
// predicate. Queries for hidden names resolve to absence, not errors.
func (v *View) Filter(pred func(name string) bool) *View {
	prev := v.allowed
	combined := pred

	if prev != nil {
		combined = func(name string) bool {
			return prev(name) && pred(name)
		}
	}

	return &View{node: v.node, source: v.source, allowed: combined}
}

// Present reports whether the named attribute resolves to a value,
// declared anywhere in the hierarchy or defaulted.
func (v *View) Present(name string) bool {
	_, ok, err := v.Get(name)
	return ok && err == nil
}

// Get computes the merged value of the named attribute. A hidden
// (filtered) name resolves to absence. An unknown name is a
// NoSuchAttributeError; a mirror conflict surfaces as a ConflictError.
// An attribute undeclared at every reachable level resolves to its
// declared default, or to absence when it has none.
func (v *View) Get(name string) (any, bool, error) {
	if v.allowed != nil && !v.allowed(name) {
		return nil, false, nil
	}

	idx, ok := v.node.Type().AttributeIndex(name)
	if !ok {
		return nil, false, &NoSuchAttributeError{Type: v.node.Type().Name(), Attribute: name}
	}

	attr := v.node.Type().Attributes()[idx]

	val, ok, err := v.declared(v.node, idx)
	if err != nil {
		return nil, false, err
	}

	if !ok {
		if !attr.HasDefault() {
			return nil, false, nil
		}

		val = attr.Default
	}

	return descriptor.WrapArray(attr, val), true, nil
}

// declared resolves the declared (pre-default) value of an attribute on a
// node. Root mappings win over everything else, so an attribute claimed by
// a root alias chain always answers from the root occurrence; mirror sets
// redirect to their canonical member; the same-name convention consults the
// root before falling back to the occurrence's own values. Absence is not
// an error.
func (v *View) declared(n *mapping.Node, idx int) (any, bool, error) {
	if n.IsRoot() {
		if set := n.MirrorSet(idx); set != nil {
			canonical, err := set.Resolve(v.source)
			if err != nil {
				return nil, false, err
			}

			idx = canonical
		}

		return get(v.source, n.Type().Attributes()[idx].Name)
	}

	if k := n.RootMapping(idx); k >= 0 {
		return v.declared(n.Root(), k)
	}

	if set := n.MirrorSet(idx); set != nil {
		canonical, err := set.Resolve(n.Source())
		if err != nil {
			return nil, false, err
		}

		// The canonical member's local value is authoritative; its alias
		// edge stays inside the set and is not followed.
		return get(n.Source(), n.Type().Attributes()[canonical].Name)
	}

	if k := n.ConventionMapping(idx); k >= 0 {
		val, ok, err := v.declared(n.Root(), k)
		if err != nil || ok {
			return val, ok, err
		}
		// Root supplies nothing; fall back to the local declared value.
	}

	return get(n.Source(), n.Type().Attributes()[idx].Name)
}

func get(src descriptor.AttributeSource, name string) (any, bool, error) {
	if src == nil {
		return nil, false, nil
	}

	val, ok := src.Get(name)
	if !ok || val == nil {
		return nil, false, nil
	}

	return val, true, nil
}

// Synthesize resolves every attribute of the view's type into a plain map,
// the seam consumed by typed-instance synthesis. It fails with a
// MissingAttributeError if any attribute truly has no value anywhere.
func (v *View) Synthesize() (map[string]any, error) {
	attrs := v.node.Type().Attributes()
	out := make(map[string]any, len(attrs))

	for _, attr := range attrs {
		val, ok, err := v.Get(attr.Name)
		if err != nil {
			return nil, err
		}

		if !ok {
			return nil, &MissingAttributeError{Type: v.node.Type().Name(), Attribute: attr.Name}
		}

		out[attr.Name] = val
	}

	return out, nil
}
