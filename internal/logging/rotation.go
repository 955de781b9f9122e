package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// RotationConfig controls size-based log rotation.
type RotationConfig struct {
	// MaxSizeMB is the maximum size in megabytes before the log file
	// is rotated. Zero or negative disables rotation.
	MaxSizeMB int

	// MaxBackups is the maximum number of rotated files to keep.
	// Older backups beyond this count are removed.
	MaxBackups int
}

// DefaultRotationConfig returns the rotation settings used when the
// config file does not override them.
func DefaultRotationConfig() RotationConfig {
	return RotationConfig{
		MaxSizeMB:  10,
		MaxBackups: 3,
	}
}

// RotatingWriter is an io.WriteCloser that rotates the underlying file
// when it exceeds the configured size. Rotated files are renamed with
// numeric suffixes: debug.log.1 is the most recent backup.
type RotatingWriter struct {
	mu     sync.Mutex
	path   string
	file   *os.File
	size   int64
	config RotationConfig
}

// NewRotatingWriter opens (or creates) the log file at path for
// appending, creating parent directories as needed.
func NewRotatingWriter(path string, config RotationConfig) (*RotatingWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("stat log file: %w", err)
	}

	return &RotatingWriter{
		path:   path,
		file:   file,
		size:   info.Size(),
		config: config,
	}, nil
}

// Write appends p to the log file, rotating first if the write would
// push the file past the size limit.
func (w *RotatingWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.shouldRotate(int64(len(p))) {
		if err := w.rotate(); err != nil {
			return 0, err
		}
	}

	n, err := w.file.Write(p)
	w.size += int64(n)
	return n, err
}

// Close closes the underlying log file.
func (w *RotatingWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.file == nil {
		return nil
	}
	err := w.file.Close()
	w.file = nil
	return err
}

func (w *RotatingWriter) shouldRotate(incoming int64) bool {
	if w.config.MaxSizeMB <= 0 {
		return false
	}
	limit := int64(w.config.MaxSizeMB) * 1024 * 1024
	return w.size+incoming > limit
}

// rotate shifts existing backups up by one index, renames the current
// file to .1, and opens a fresh file at the original path.
func (w *RotatingWriter) rotate() error {
	if err := w.file.Close(); err != nil {
		return fmt.Errorf("close log file for rotation: %w", err)
	}

	maxBackups := w.config.MaxBackups
	if maxBackups < 1 {
		maxBackups = 1
	}

	// Drop the oldest backup if present, then shift the rest.
	oldest := fmt.Sprintf("%s.%d", w.path, maxBackups)
	if _, err := os.Stat(oldest); err == nil {
		if err := os.Remove(oldest); err != nil {
			return fmt.Errorf("remove oldest backup: %w", err)
		}
	}
	for i := maxBackups - 1; i >= 1; i-- {
		src := fmt.Sprintf("%s.%d", w.path, i)
		if _, err := os.Stat(src); err != nil {
			continue
		}
		dst := fmt.Sprintf("%s.%d", w.path, i+1)
		if err := os.Rename(src, dst); err != nil {
			return fmt.Errorf("shift backup %d: %w", i, err)
		}
	}

	if err := os.Rename(w.path, w.path+".1"); err != nil {
		return fmt.Errorf("rotate log file: %w", err)
	}

	file, err := os.OpenFile(w.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("reopen log file: %w", err)
	}
	w.file = file
	w.size = 0
	return nil
}
