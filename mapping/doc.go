// Package mapping builds the meta-annotation mapping tree for a root
// annotation type: the set of mapping nodes reachable through meta
// annotations, with explicit alias edges, same-type mirror sets, and
// per-attribute root mappings.
//
// Construction pipeline:
//  1. Breadth-first traversal from the root type via the MetaSupplier port
//     (cycle guard, exclusion filter, repeatable-container expansion)
//  2. Resolve and validate explicit alias declarations per node
//  3. Group reciprocal same-type aliases into mirror sets and validate them
//  4. Finalize: verify every alias target type is meta-present, collapse
//     alias chains terminating at the root, and claim every attribute
//     reachable from a root attribute's alias closure for that root
//     attribute
//
// A finalized Tree is immutable and safe to share across goroutines. Trees
// are cached per (root type, filter) by Cache for the process lifetime.
package mapping
