// Package visibility maintains the category and column visibility state for
// the active table.
//
// # Overview
//
// The Coordinator owns two pieces of derived, mutable state: the set of
// currently visible column keys and a visible flag per category. Two write
// paths exist, and they are intentionally asymmetric:
//
//   - ToggleColumn patches a single column's membership in place and never
//     touches category flags.
//   - ToggleCategory flips one category flag and then regenerates the whole
//     visible set from the live flags, using the same rule as
//     initialization. Manual column toggles made before a category toggle
//     are discarded for every column that has category assignments.
//
// Columns with no categories are outside the category system entirely: no
// category action can affect them, and they keep their individual
// membership across recomputes.
//
// # Initialization rule
//
// A column is initially visible iff its explicit visible flag is true, or,
// when the flag is unset, at least one of its categories is visible (all of
// them, under AndSemantics). Columns with no categories and no explicit flag
// default to visible. The same rule, evaluated over live flags instead of
// defaults, drives every category recompute.
//
// # Concurrency
//
// All mutating operations serialize behind a single writer lock:
// ToggleCategory reads flags, recomputes, and writes the set back, a
// sequence that is not safe under interleaving. Accessors take a read lock
// and return copies.
package visibility
