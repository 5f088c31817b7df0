// Package report renders duplicate groups, consolidation progress and run
// summaries for the terminal.
//
// All output goes to the writer handed to NewPrinter. Styling comes from a
// lipgloss renderer bound to that writer, so colors are dropped automatically
// when the writer is not a terminal.
package report
