// Package descriptor defines the static shape of annotation types: ordered
// attributes with declared kinds and default values, plus the ports through
// which annotation occurrences and type definitions are supplied to the
// merge engine.
//
// Descriptors are passive shape descriptions. All validation of alias and
// mirror structure lives in the mapping package; all value resolution lives
// in the merged package.
package descriptor
