// Package preflight provides readiness checks for the filesystem paths a
// consolidation run touches.
//
// These checks run in two contexts:
//   - The consolidator calls CheckFreeSpace before copying; a shortfall is
//     reported as a warning and the copy still proceeds.
//   - The "config validate" command calls RunAll to show whether the input
//     and output directories are usable.
package preflight
