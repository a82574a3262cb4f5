package descriptor

// Occurrence is one concrete annotation occurrence: its type identity plus
// the literal attribute values found on it.
type Occurrence struct {
	// Type is the annotation type identity.
	Type string
	// Source supplies the declared attribute values.
	Source AttributeSource
}

// TypeResolver resolves an annotation type identity to its descriptor.
// Backed by a schema registry, reflection, or literal maps; opaque to the
// engine.
type TypeResolver interface {
	ResolveType(name string) (*Type, bool)
}

// MetaSupplier returns the ordered list of annotations declared directly on
// an annotation type.
type MetaSupplier interface {
	MetaAnnotations(name string) []Occurrence
}
