// Package schema provides YAML schema definitions, parsing, validation,
// and the registry backing the descriptor ports with file-based annotation
// definitions.
//
// # Key capabilities
//
//   - Declare annotation types with ordered attributes, kinds, and defaults
//   - Declare explicit attribute aliases (shorthand or full form)
//   - Declare meta-annotations with literal attribute values
//   - Mark types repeatable for container expansion
//   - Structural validation with attribute-level diagnostics
//
// # Schema overview
//
//	version: "1"
//	annotations:
//	  - name: Route
//	    attributes:
//	      - name: value
//	        kind: scalar-array
//	        default: []
//	        alias: path            # shorthand: same type, named attribute
//	      - name: path
//	        kind: scalar-array
//	        default: []
//	        alias: value
//	  - name: Get
//	    attributes:
//	      - name: path
//	        kind: scalar-array
//	        default: []
//	        alias: {type: Route, attribute: path}
//	    meta:
//	      - type: Route
//	        values: {method: GET}
//
// A separate instances file supplies concrete annotated elements:
//
//	elements:
//	  - name: OrderHandler.list
//	    levels:
//	      - annotations:
//	          - type: Get
//	            values: {path: /orders}
//
// An alias written as a bare string names an attribute on the owning type;
// the full map form selects a different target type. An omitted target
// attribute defaults to the source attribute's own name.
package schema
