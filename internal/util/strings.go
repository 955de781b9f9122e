// Package util provides shared helpers used across the codebase.
package util

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// TruncateANSI shortens s to at most maxWidth visual columns, appending
// "..." when anything was cut. Wide characters count as two columns and
// ANSI escape sequences are preserved, so it is safe for styled task
// lines rendered to a terminal.
func TruncateANSI(s string, maxWidth int) string {
	if maxWidth <= 3 {
		return "..."
	}
	if lipgloss.Width(s) <= maxWidth {
		return s
	}
	// ansi.Truncate counts the tail toward the final width.
	return ansi.Truncate(s, maxWidth, "...")
}
