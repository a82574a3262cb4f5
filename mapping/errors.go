package mapping

import (
	"fmt"

	"annotation-merger/internal/diagnostic"
)

// ConfigError reports structural problems detected while building or
// finalizing a mapping tree. It is permanent for the offending root type:
// retrying the build yields the same error.
type ConfigError struct {
	// Root is the root annotation type of the failed tree.
	Root string
	// Diags holds the individual configuration problems.
	Diags diagnostic.Diagnostics
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid annotation configuration for %q: %v", e.Root, e.Diags.Error())
}

// ConflictError reports two mirrored attributes carrying different
// non-default values on the same concrete occurrence.
type ConflictError struct {
	// Type is the annotation type owning the mirror set.
	Type string
	// AttrA and AttrB are the disagreeing attribute names.
	AttrA, AttrB string
	// ValueA and ValueB are the offending declared values.
	ValueA, ValueB any
}

// Error implements the error interface.
func (e *ConflictError) Error() string {
	return fmt.Sprintf(
		"mirrored attributes %s.%s and %s.%s declare different values: %v and %v",
		e.Type, e.AttrA, e.Type, e.AttrB, e.ValueA, e.ValueB,
	)
}
