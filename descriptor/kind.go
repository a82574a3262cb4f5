package descriptor

import (
	"fmt"

	"annotation-merger/internal/common"
)

// Kind represents the declared kind of an annotation attribute.
type Kind int

const (
	KindUnknown Kind = iota
	// KindScalar - a single scalar value (string, number, bool).
	KindScalar
	// KindScalarArray - an ordered list of scalar values.
	KindScalarArray
	// KindAnnotation - a nested annotation value.
	KindAnnotation
	// KindAnnotationArray - an ordered list of nested annotation values.
	KindAnnotationArray
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindScalarArray:
		return "scalar-array"
	case KindAnnotation:
		return "annotation"
	case KindAnnotationArray:
		return "annotation-array"
	default:
		return common.UnknownStr
	}
}

// IsArray returns true for the array kinds.
func (k Kind) IsArray() bool {
	return k == KindScalarArray || k == KindAnnotationArray
}

// IsNested returns true for kinds holding nested annotation values.
func (k Kind) IsNested() bool {
	return k == KindAnnotation || k == KindAnnotationArray
}

// Elem returns the element kind of an array kind, or KindUnknown.
func (k Kind) Elem() Kind {
	switch k {
	case KindScalarArray:
		return KindScalar
	case KindAnnotationArray:
		return KindAnnotation
	default:
		return KindUnknown
	}
}

// Array returns the array form of a non-array kind, or KindUnknown.
func (k Kind) Array() Kind {
	switch k {
	case KindScalar:
		return KindScalarArray
	case KindAnnotation:
		return KindAnnotationArray
	default:
		return KindUnknown
	}
}

// ParseKind parses a kind name as used in definition files.
// An empty string parses as KindScalar.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "", "scalar":
		return KindScalar, nil
	case "scalar-array":
		return KindScalarArray, nil
	case "annotation":
		return KindAnnotation, nil
	case "annotation-array":
		return KindAnnotationArray, nil
	default:
		return KindUnknown, fmt.Errorf("unknown attribute kind %q", s)
	}
}
