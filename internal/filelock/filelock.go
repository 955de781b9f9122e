// Package filelock provides an advisory lock around journal writes so
// two concurrent dailydo invocations cannot clobber the same file.
//
// The lock is a sidecar ".lock" file created with O_EXCL. It holds the
// owning process id; a lock whose file is older than the staleness
// window is assumed to belong to a crashed process and is broken.
package filelock

import (
	"fmt"
	"os"
	"time"

	"github.com/luoxin/dailydo/internal/errors"
)

// ErrLocked is returned when the lock is held by another live process.
var ErrLocked = errors.New("file is locked by another process")

// Staleness is how old a lock file may be before it is considered
// abandoned and broken. Journal writes finish in well under a second,
// so anything this old is a leftover from a crash.
const Staleness = 30 * time.Second

const (
	acquireAttempts = 5
	acquireDelay    = 100 * time.Millisecond
)

// Lock is a held advisory lock. Release it with Unlock.
type Lock struct {
	path string
}

// Acquire takes the advisory lock guarding path. It retries briefly so
// back-to-back commands queue instead of failing, then returns
// ErrLocked if the lock is still held.
func Acquire(path string) (*Lock, error) {
	lockPath := path + ".lock"

	for attempt := 0; attempt < acquireAttempts; attempt++ {
		if attempt > 0 {
			time.Sleep(acquireDelay)
		}

		f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
		if err == nil {
			fmt.Fprintf(f, "%d\n", os.Getpid())
			f.Close()
			return &Lock{path: lockPath}, nil
		}
		if !os.IsExist(err) {
			return nil, fmt.Errorf("create lock file: %w", err)
		}

		if breakIfStale(lockPath) {
			continue
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrLocked, lockPath)
}

// Unlock releases the lock. Releasing twice is harmless.
func (l *Lock) Unlock() error {
	if l == nil || l.path == "" {
		return nil
	}
	err := os.Remove(l.path)
	l.path = ""
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove lock file: %w", err)
	}
	return nil
}

// breakIfStale removes a lock file left behind by a crashed process.
// Returns true if the lock was broken and acquisition should retry.
func breakIfStale(lockPath string) bool {
	info, err := os.Stat(lockPath)
	if err != nil {
		// Holder released between our open and stat; retry.
		return os.IsNotExist(err)
	}
	if time.Since(info.ModTime()) < Staleness {
		return false
	}
	return os.Remove(lockPath) == nil
}
