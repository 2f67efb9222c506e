// Package merge implements the update disciplines applied to host record
// sections.
//
// Two disciplines exist:
//
//   - Override: the existing value is discarded and the update replaces it,
//     regardless of either value's shape.
//   - InPlace: a recursive deep merge where the update wins at every leaf.
//     Nested mappings are merged key by key; scalars and sequences from the
//     update replace the existing value wholesale. Keys present only in the
//     existing value are preserved.
//
// Both operations are pure: inputs are never mutated and applying the same
// update twice produces the same result (InPlace is idempotent).
//
// # Usage
//
//	result := merge.Apply(existing, update, merge.InPlace)
package merge
