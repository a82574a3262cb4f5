package descriptor

import "reflect"

// AttributeSource supplies the literal attribute values declared on one
// annotation occurrence. The backing representation is opaque to the
// engine; absent attributes return false.
type AttributeSource interface {
	Get(name string) (any, bool)
}

// MapSource is an AttributeSource backed by a plain map. A nil MapSource
// declares nothing.
type MapSource map[string]any

// Get returns the declared value for an attribute name.
func (m MapSource) Get(name string) (any, bool) {
	v, ok := m[name]
	return v, ok
}

// Equal compares two attribute values structurally. Arrays compare
// element-wise, nested annotation values compare by attribute map.
func Equal(a, b any) bool {
	return reflect.DeepEqual(a, b)
}

// IsDefault reports whether a declared value counts as the attribute's
// default. A nil value always does, an empty array does for array kinds,
// and any value equal to the declared default does.
func IsDefault(attr Attribute, v any) bool {
	if v == nil {
		return true
	}

	if attr.Kind.IsArray() {
		if arr, ok := v.([]any); ok && len(arr) == 0 {
			return true
		}
	}

	return attr.HasDefault() && Equal(v, attr.Default)
}

// WrapArray coerces a bare value into a single-element array when the
// owning attribute's kind is an array kind. Values that already are arrays
// and nil values pass through unchanged. No other implicit coercions are
// performed by the engine.
func WrapArray(attr Attribute, v any) any {
	if v == nil || !attr.Kind.IsArray() {
		return v
	}

	if _, ok := v.([]any); ok {
		return v
	}

	return []any{v}
}
