// Package lookup exposes presence and nearest/all-matches queries over an
// instantiated hierarchy of declared annotation occurrences.
//
// The hierarchy is supplied by an external scanner as ordered aggregate
// levels (e.g. the declaring element first, then each superclass). Each
// query walks the mapping trees of the declared root occurrences and
// produces merged views on demand; no merged value is computed until
// specifically queried.
package lookup
