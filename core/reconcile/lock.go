package reconcile

import (
	"errors"
	"sync"
)

// ErrAlreadyRunning is returned by RunLock.TryRun when another run holds the lock.
var ErrAlreadyRunning = errors.New("another run is already in progress")

// RunLock keeps pipeline runs (imports, reconciliation) from overlapping inside one process.
type RunLock struct {
	mu      sync.Mutex
	running string
}

// TryRun executes fn unless another run is active.
func (l *RunLock) TryRun(name string, fn func() error) error {
	l.mu.Lock()
	if l.running != "" {
		l.mu.Unlock()
		return ErrAlreadyRunning
	}
	l.running = name
	l.mu.Unlock()

	defer func() {
		l.mu.Lock()
		l.running = ""
		l.mu.Unlock()
	}()
	return fn()
}

// Running returns the name of the active run, or "".
func (l *RunLock) Running() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.running
}
