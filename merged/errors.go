package merged

import "fmt"

// NoSuchAttributeError reports a query for an attribute name absent from
// the annotation type descriptor.
type NoSuchAttributeError struct {
	Type      string
	Attribute string
}

// Error implements the error interface.
func (e *NoSuchAttributeError) Error() string {
	return fmt.Sprintf("annotation type %q has no attribute %q", e.Type, e.Attribute)
}

// MissingAttributeError reports an attribute with no value anywhere: not
// declared at any reachable hierarchy level and without a declared default.
// Raised by the synthesis seam, which requires every attribute to resolve.
type MissingAttributeError struct {
	Type      string
	Attribute string
}

// Error implements the error interface.
func (e *MissingAttributeError) Error() string {
	return fmt.Sprintf("attribute %s.%s has no declared value and no default", e.Type, e.Attribute)
}
