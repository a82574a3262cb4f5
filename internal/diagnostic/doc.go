// Package diagnostic provides structured errors, warnings, and infos
// collected while validating annotation definitions and building
// meta-annotation mapping trees.
//
// Key capabilities:
//   - Structural definition errors (duplicate attributes, bad kinds)
//   - Alias configuration errors with attribute-level context
//   - Aggregated reporting with severity levels
package diagnostic
