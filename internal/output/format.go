// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"taskpad/internal/task"
)

// FormatTask formats a task line.
// Format: "{ID:>4}  [{mark}] {TITLE}\n" where mark is "x" for completed tasks.
func FormatTask(w io.Writer, t task.Task, done bool) {
	mark := " "
	if done {
		mark = "x"
	}
	fmt.Fprintf(w, "%4d  [%s] %s\n", t.ID, mark, normalizeTitle(t.Title))
}

// FormatSummary formats the totals line under a task listing.
func FormatSummary(w io.Writer, total, completed int) {
	fmt.Fprintf(w, "%d tasks, %d completed\n", total, completed)
}

// normalizeTitle normalizes a task title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")

	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
