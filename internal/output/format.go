// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"replanka/internal/engine"
	"replanka/internal/service"
)

// FormatList prints a board list name, marking the tracked to-do/done pair.
// role is empty for untracked lists.
func FormatList(w io.Writer, list service.List, role string) {
	name := normalizeName(list.Name)
	if role != "" {
		name += " [" + role + "]"
	}
	fmt.Fprintln(w, name)
}

// FormatStats prints a one-line reconciliation summary.
func FormatStats(w io.Writer, stats engine.Stats) {
	fmt.Fprintf(w, "scheduled=%d returned=%d waiting=%d skipped=%d\n",
		stats.Scheduled, stats.Returned, stats.Waiting, stats.Skipped)
}

// normalizeName normalizes a list name for display.
// Empty or whitespace-only names become "(unnamed)".
func normalizeName(name string) string {
	if strings.TrimSpace(name) == "" {
		return "(unnamed)"
	}
	return name
}
