// Package testutil provides testing helpers for dailydo tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/luoxin/dailydo/internal/journal"
)

// SetupJournalDir creates a temporary journal directory for testing.
// The directory is automatically cleaned up when the test completes.
func SetupJournalDir(t *testing.T) string {
	t.Helper()
	return t.TempDir()
}

// SetupJournalDirWithFiles creates a journal directory containing the
// given files. The files map keys are file names relative to the
// directory (typically "2026-08-31.md") and values are raw contents.
func SetupJournalDirWithFiles(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write journal file %s: %v", name, err)
		}
	}
	return dir
}

// Date parses an ISO date string into a time.Time, failing the test on
// malformed input.
func Date(t *testing.T, iso string) time.Time {
	t.Helper()

	d, err := time.Parse(journal.DateFormat, iso)
	if err != nil {
		t.Fatalf("invalid test date %q: %v", iso, err)
	}
	return d
}

// Doc builds a document for the given ISO date with tasks in the given
// statuses, numbered from 1 in order.
func Doc(t *testing.T, iso string, tasks ...journal.Task) *journal.Document {
	t.Helper()

	doc := journal.NewDocument(Date(t, iso))
	for _, task := range tasks {
		doc.AddTask(task.Description)
		doc.Tasks[len(doc.Tasks)-1].Status = task.Status
	}
	return doc
}

// Pending is shorthand for a pending task in Doc fixtures.
func Pending(desc string) journal.Task {
	return journal.Task{Description: desc, Status: journal.StatusPending}
}

// Done is shorthand for a completed task in Doc fixtures.
func Done(desc string) journal.Task {
	return journal.Task{Description: desc, Status: journal.StatusDone}
}

// Abandoned is shorthand for an abandoned task in Doc fixtures.
func Abandoned(desc string) journal.Task {
	return journal.Task{Description: desc, Status: journal.StatusAbandoned}
}
