package schema

import (
	"fmt"

	"annotation-merger/descriptor"
)

// Registry backs the descriptor TypeResolver and MetaSupplier ports with
// parsed annotation definitions. Immutable after construction.
type Registry struct {
	order []string
	types map[string]*descriptor.Type
	meta  map[string][]descriptor.Occurrence
}

// NewRegistry validates a definitions file and builds the registry.
// Structural validation failures are returned as a single error.
func NewRegistry(df *DefinitionFile) (*Registry, error) {
	diags := Validate(df)
	if diags.HasErrors() {
		return nil, fmt.Errorf("invalid annotation definitions: %w", diags.Error())
	}

	r := &Registry{
		order: make([]string, 0, len(df.Annotations)),
		types: make(map[string]*descriptor.Type, len(df.Annotations)),
		meta:  make(map[string][]descriptor.Occurrence, len(df.Annotations)),
	}

	for i := range df.Annotations {
		ad := &df.Annotations[i]

		attrs := make([]descriptor.Attribute, 0, len(ad.Attributes))
		for j := range ad.Attributes {
			attrs = append(attrs, toAttribute(&ad.Attributes[j]))
		}

		r.order = append(r.order, ad.Name)
		r.types[ad.Name] = descriptor.NewType(ad.Name, ad.Repeatable, attrs)

		occs := make([]descriptor.Occurrence, 0, len(ad.Meta))
		for _, m := range ad.Meta {
			occs = append(occs, descriptor.Occurrence{
				Type:   m.Type,
				Source: descriptor.MapSource(m.Values),
			})
		}

		r.meta[ad.Name] = occs
	}

	return r, nil
}

func toAttribute(def *AttributeDef) descriptor.Attribute {
	// Kind spelling was checked by Validate.
	kind, _ := descriptor.ParseKind(def.Kind)

	attr := descriptor.Attribute{
		Name:    def.Name,
		Kind:    kind,
		Elem:    def.Elem,
		Default: def.Default,
	}

	if def.Alias != nil {
		attr.Alias = &descriptor.AliasRef{
			Type:      def.Alias.Type,
			Attribute: def.Alias.Attribute,
		}
	}

	return attr
}

// ResolveType implements descriptor.TypeResolver.
func (r *Registry) ResolveType(name string) (*descriptor.Type, bool) {
	t, ok := r.types[name]
	return t, ok
}

// MetaAnnotations implements descriptor.MetaSupplier.
func (r *Registry) MetaAnnotations(name string) []descriptor.Occurrence {
	return r.meta[name]
}

// TypeNames returns the defined annotation type names in declaration
// order.
func (r *Registry) TypeNames() []string {
	return r.order
}
