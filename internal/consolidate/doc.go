// Package consolidate copies one representative per digest group into an
// output directory.
//
// The sequence is fixed: confirm the copy, ensure the output directory
// exists, confirm and clear it when it already holds entries, check free
// space, then copy each plan item in order. Clearing removes only the files
// and symlinks directly inside the output directory; it never recurses.
// Source files are only ever read.
//
// Confirmation is injected through Confirmer so the package has no terminal
// dependency. AssumeYes skips both questions.
package consolidate
