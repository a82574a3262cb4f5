package descriptor

// ValueAttribute is the reserved primary-value attribute name. It is the
// single attribute name excluded from same-name convention mapping, and the
// attribute a repeatable container holds its elements in.
const ValueAttribute = "value"

// AliasRef declares an explicit alias from the owning attribute to an
// attribute on a target annotation type.
type AliasRef struct {
	// Type is the target annotation type. Empty means the owning type.
	Type string
	// Attribute is the target attribute name. Empty means the owning
	// attribute's own name.
	Attribute string
}

// Attribute describes a single attribute of an annotation type.
type Attribute struct {
	// Name is unique within the owning type.
	Name string
	// Kind is the declared attribute kind.
	Kind Kind
	// Elem names the nested annotation type for nested kinds.
	Elem string
	// Default is the declared default value, or nil when no default is
	// declared.
	Default any
	// Alias is the explicit alias declaration, or nil.
	Alias *AliasRef
}

// HasDefault returns true if the attribute declares a default value.
func (a Attribute) HasDefault() bool {
	return a.Default != nil
}

// HasAlias returns true if the attribute declares an explicit alias.
func (a Attribute) HasAlias() bool {
	return a.Alias != nil
}

// Type is the immutable shape of one annotation type: its identity plus an
// ordered attribute list.
type Type struct {
	name       string
	repeatable bool
	attrs      []Attribute
	index      map[string]int
}

// NewType creates a type descriptor. Attribute order is preserved; on
// duplicate names the first declaration wins for name lookups (duplicates
// are rejected by schema validation before descriptors are built).
func NewType(name string, repeatable bool, attrs []Attribute) *Type {
	index := make(map[string]int, len(attrs))

	for i, a := range attrs {
		if _, ok := index[a.Name]; !ok {
			index[a.Name] = i
		}
	}

	return &Type{
		name:       name,
		repeatable: repeatable,
		attrs:      attrs,
		index:      index,
	}
}

// Name returns the annotation type identity.
func (t *Type) Name() string {
	return t.name
}

// Repeatable returns true if occurrences of this type may be repeated and
// collected inside a container annotation.
func (t *Type) Repeatable() bool {
	return t.repeatable
}

// Attributes returns the stable ordered attribute list.
func (t *Type) Attributes() []Attribute {
	return t.attrs
}

// Attribute returns the descriptor for the named attribute.
func (t *Type) Attribute(name string) (Attribute, bool) {
	i, ok := t.index[name]
	if !ok {
		return Attribute{}, false
	}

	return t.attrs[i], true
}

// AttributeIndex returns the declaration index of the named attribute.
func (t *Type) AttributeIndex(name string) (int, bool) {
	i, ok := t.index[name]
	return i, ok
}

// DefaultValue returns the declared default for the named attribute, or
// false when the attribute is unknown or declares no default.
func (t *Type) DefaultValue(name string) (any, bool) {
	a, ok := t.Attribute(name)
	if !ok || !a.HasDefault() {
		return nil, false
	}

	return a.Default, true
}
