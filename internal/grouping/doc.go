// Package grouping partitions hashed files by digest.
//
// Groups are enumerated in the order their digest was first seen, and the
// members of each group keep discovery order. The first member of a group is
// its representative; the ConsolidationPlan lists exactly one representative
// per group in the same fixed order used for display.
package grouping
