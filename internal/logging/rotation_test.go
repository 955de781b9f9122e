package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRotatingWriterCreatesDirectories(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "logs", "debug.log")

	w, err := NewRotatingWriter(path, DefaultRotationConfig())
	if err != nil {
		t.Fatalf("NewRotatingWriter() error = %v", err)
	}
	defer w.Close()

	if _, err := os.Stat(path); err != nil {
		t.Errorf("log file not created: %v", err)
	}
}

func TestRotatingWriterAppends(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "debug.log")

	w, err := NewRotatingWriter(path, DefaultRotationConfig())
	if err != nil {
		t.Fatalf("NewRotatingWriter() error = %v", err)
	}
	if _, err := w.Write([]byte("first\n")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	w.Close()

	w, err = NewRotatingWriter(path, DefaultRotationConfig())
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	if _, err := w.Write([]byte("second\n")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	w.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != "first\nsecond\n" {
		t.Errorf("file contents = %q, want %q", data, "first\nsecond\n")
	}
}

func TestRotatingWriterRotates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "debug.log")

	// 1 MB limit; write just under it, then push past.
	w, err := NewRotatingWriter(path, RotationConfig{MaxSizeMB: 1, MaxBackups: 2})
	if err != nil {
		t.Fatalf("NewRotatingWriter() error = %v", err)
	}
	defer w.Close()

	chunk := []byte(strings.Repeat("a", 512*1024))
	for i := 0; i < 2; i++ {
		if _, err := w.Write(chunk); err != nil {
			t.Fatalf("Write() error = %v", err)
		}
	}
	// This write exceeds the limit and must trigger a rotation.
	if _, err := w.Write([]byte("overflow\n")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	if _, err := os.Stat(path + ".1"); err != nil {
		t.Errorf("expected rotated backup at %s.1: %v", path, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != "overflow\n" {
		t.Errorf("fresh file contents = %q, want %q", data, "overflow\n")
	}
}

func TestRotatingWriterDropsOldBackups(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "debug.log")

	w, err := NewRotatingWriter(path, RotationConfig{MaxSizeMB: 1, MaxBackups: 2})
	if err != nil {
		t.Fatalf("NewRotatingWriter() error = %v", err)
	}
	defer w.Close()

	chunk := []byte(strings.Repeat("b", 1024*1024))
	for i := 0; i < 4; i++ {
		if _, err := w.Write(chunk); err != nil {
			t.Fatalf("Write() error = %v", err)
		}
	}

	if _, err := os.Stat(path + ".3"); !os.IsNotExist(err) {
		t.Errorf("backup beyond MaxBackups should not exist, stat err = %v", err)
	}
}

func TestRotatingWriterDisabled(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "debug.log")

	w, err := NewRotatingWriter(path, RotationConfig{MaxSizeMB: 0})
	if err != nil {
		t.Fatalf("NewRotatingWriter() error = %v", err)
	}
	defer w.Close()

	if _, err := w.Write([]byte(strings.Repeat("c", 2048))); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if _, err := os.Stat(path + ".1"); !os.IsNotExist(err) {
		t.Errorf("rotation disabled but backup exists, stat err = %v", err)
	}
}
