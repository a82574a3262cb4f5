// Package merged computes merged attribute values: the value of an
// attribute after resolving explicit aliases, same-name conventions, and
// mirror sets across a meta-annotation mapping tree.
//
// A View pairs one mapping node with the declared values of the concrete
// root occurrence. Resolution is a pure function of that pairing: identical
// inputs always yield identical merged values, and no state is mutated.
// Views are cheap to create and are not cached.
package merged
