// Package storage persists journal documents as one Markdown file per
// calendar date under a base directory.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"time"

	"github.com/luoxin/dailydo/internal/errors"
	"github.com/luoxin/dailydo/internal/filelock"
	"github.com/luoxin/dailydo/internal/journal"
)

// fileNameRe matches journal file names: YYYY-MM-DD.md.
var fileNameRe = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})\.md$`)

// Store reads and writes daily journal files under a single base
// directory. The base directory is passed in explicitly; the store
// never consults process-global state.
type Store struct {
	baseDir string
}

// New creates a store rooted at baseDir. The directory is created
// lazily on first write.
func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

// BaseDir returns the store's root directory.
func (s *Store) BaseDir() string {
	return s.baseDir
}

// PathFor returns the file path backing the given date.
func (s *Store) PathFor(date time.Time) string {
	return filepath.Join(s.baseDir, date.Format(journal.DateFormat)+".md")
}

// Read returns the raw content for a date. A missing file is reported
// as errors.ErrDocumentNotFound; any other failure is a storage error.
func (s *Store) Read(date time.Time) (string, error) {
	path := s.PathFor(date)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%s: %w", date.Format(journal.DateFormat), errors.ErrDocumentNotFound)
		}
		return "", errors.NewStorageError("read journal file", err).
			WithDate(date.Format(journal.DateFormat)).WithPath(path)
	}
	return string(data), nil
}

// Write atomically replaces the file for a date with content: the full
// text is written to a temporary file in the same directory, synced,
// and renamed into place, so a concurrent read never observes a
// partially written file. An advisory lock serializes concurrent
// writers to the same date.
func (s *Store) Write(date time.Time, content string) error {
	dateISO := date.Format(journal.DateFormat)
	path := s.PathFor(date)

	if err := os.MkdirAll(s.baseDir, 0755); err != nil {
		return errors.NewStorageError("create journal directory", err).
			WithDate(dateISO).WithPath(s.baseDir)
	}

	lock, err := filelock.Acquire(path)
	if err != nil {
		return errors.NewStorageError("lock journal file", err).
			WithDate(dateISO).WithPath(path)
	}
	defer func() { _ = lock.Unlock() }()

	tmp, err := os.CreateTemp(s.baseDir, "."+dateISO+"-*.tmp")
	if err != nil {
		return errors.NewStorageError("create temporary file", err).
			WithDate(dateISO).WithPath(s.baseDir)
	}
	tmpPath := tmp.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if _, err := tmp.WriteString(content); err != nil {
		_ = tmp.Close()
		return errors.NewStorageError("write temporary file", err).
			WithDate(dateISO).WithPath(tmpPath)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return errors.NewStorageError("sync temporary file", err).
			WithDate(dateISO).WithPath(tmpPath)
	}
	if err := tmp.Close(); err != nil {
		return errors.NewStorageError("close temporary file", err).
			WithDate(dateISO).WithPath(tmpPath)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return errors.NewStorageError("replace journal file", err).
			WithDate(dateISO).WithPath(path)
	}
	return nil
}

// Load reads and parses the document for a date, setting its date.
// Parse warnings are returned alongside; a missing file is
// errors.ErrDocumentNotFound.
func (s *Store) Load(date time.Time) (*journal.Document, []journal.Warning, error) {
	raw, err := s.Read(date)
	if err != nil {
		return nil, nil, err
	}
	doc, warnings := journal.Parse(raw)
	doc.Date = date
	return doc, warnings, nil
}

// Save serializes the document and writes it under its date.
func (s *Store) Save(doc *journal.Document) error {
	return s.Write(doc.Date, journal.Serialize(doc))
}

// Exists reports whether a journal file exists for the date.
func (s *Store) Exists(date time.Time) bool {
	_, err := os.Stat(s.PathFor(date))
	return err == nil
}

// List returns the dates in [from, to] (inclusive) that have journal
// files, in ascending order. A missing base directory yields an empty
// list, not an error.
func (s *Store) List(from, to time.Time) ([]time.Time, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.NewStorageError("list journal directory", err).WithPath(s.baseDir)
	}

	var dates []time.Time
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		m := fileNameRe.FindStringSubmatch(entry.Name())
		if m == nil {
			continue
		}
		d, err := time.Parse(journal.DateFormat, m[1])
		if err != nil {
			continue
		}
		if d.Before(from) || d.After(to) {
			continue
		}
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates, nil
}
