// Package lock provides file-based locking for application directories.
//
// prepare and build both write into the application directory, so two runs
// against the same directory must not overlap.
package lock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Dir is the directory, relative to the application directory, that holds lock files.
// It is excluded from the build context.
const Dir = ".theia-builder"

// ErrLocked indicates the lock is held by another process.
var ErrLocked = errors.New("lock is held by another process")

// Lock represents a file-based lock.
type Lock struct {
	path string
	file *os.File
}

// New creates a new lock for the given operation in the application directory.
func New(appDir, operation string) *Lock {
	return &Lock{
		path: filepath.Join(appDir, Dir, "locks", operation+".lock"),
	}
}

// Path returns the lock file path.
func (l *Lock) Path() string {
	return l.path
}

func (l *Lock) operation() string {
	return strings.TrimSuffix(filepath.Base(l.path), ".lock")
}

// Acquire attempts to acquire the lock without blocking.
// Returns an error wrapping ErrLocked if the lock is already held.
func (l *Lock) Acquire() error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0755); err != nil {
		return fmt.Errorf("create lock directory: %w", err)
	}

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return fmt.Errorf("open lock file: %w", err)
	}

	if err := lockFile(f); err != nil {
		f.Close()
		l.file = nil
		if errors.Is(err, ErrLocked) {
			return fmt.Errorf("another %s operation is already running: %w", l.operation(), err)
		}
		return fmt.Errorf("acquire lock: %w", err)
	}

	// PID for debugging stale locks
	f.Truncate(0)
	f.Seek(0, 0)
	fmt.Fprintf(f, "%d\n", os.Getpid())

	l.file = f
	return nil
}

// Release releases the lock and removes the lock file.
func (l *Lock) Release() error {
	if l.file == nil {
		return nil
	}

	if err := unlockFile(l.file); err != nil {
		l.file.Close()
		l.file = nil
		return fmt.Errorf("release lock: %w", err)
	}

	l.file.Close()
	os.Remove(l.path)
	l.file = nil

	// Drop the lock directories when nothing else is held.
	locksDir := filepath.Dir(l.path)
	if os.Remove(locksDir) == nil {
		os.Remove(filepath.Dir(locksDir))
	}

	return nil
}

// WithLock executes a function while holding the lock.
// The lock is automatically released when the function returns.
func WithLock(appDir, operation string, fn func() error) error {
	lock := New(appDir, operation)
	if err := lock.Acquire(); err != nil {
		return err
	}
	defer lock.Release()

	return fn()
}
