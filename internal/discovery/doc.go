// Package discovery finds capture files beneath a root directory.
//
// The walk is recursive and lexical, filters by a case-sensitive extension
// whitelist, and prunes directories by base name at any depth as well as by
// absolute path (the consolidation output directory). Directory symlinks are
// not followed; file symlinks are reported with their target's size. Any walk
// error fails the discovery because duplicate detection over a partial set is
// silently wrong.
package discovery
