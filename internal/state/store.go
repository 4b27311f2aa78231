package state

import (
	"fmt"
	"sync"
	"time"
)

// Snapshot is the persistence health visible to the UI.
type Snapshot struct {
	Loaded              bool
	LoadError           error
	LastSaved           time.Time
	Saves               int
	LastAttempt         time.Time
	LastError           error
	ConsecutiveFailures int // saves that failed in a row, retries included once
}

// IsFailing reports whether saving has failed more than once in a row.
func (s Snapshot) IsFailing() bool {
	return s.ConsecutiveFailures >= 2
}

// Pending reports whether a save has been attempted since the last success
// without succeeding.
func (s Snapshot) Pending() bool {
	return s.LastError != nil
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	// Now stamps updates; nil means time.Now.
	Now func() time.Time

	mu       sync.RWMutex
	snapshot Snapshot
}

func (s *Store) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// RecordLoad stores the startup load result.
func (s *Store) RecordLoad(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Loaded = true
	s.snapshot.LoadError = err
}

// RecordSave stores the outcome of one save. When err is non-nil the previous
// success time is kept but the error is recorded for visibility.
func (s *Store) RecordSave(err error) {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.LastAttempt = now
	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.ConsecutiveFailures++
		return
	}
	s.snapshot.LastError = nil
	s.snapshot.LastSaved = now
	s.snapshot.Saves++
	s.snapshot.ConsecutiveFailures = 0
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	if s.snapshot.LoadError != nil {
		snap.LoadError = fmt.Errorf("%w", s.snapshot.LoadError)
	}
	return snap
}
