package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/five82/avgang/internal/vasttrafik"
)

// Snapshot represents the latest data available to the UI.
type Snapshot struct {
	Departures          vasttrafik.DepartureList
	HasData             bool // at least one successful fetch
	LastSuccess         time.Time
	LastAttempt         time.Time
	LastError           error
	ConsecutiveFailures int
	Generation          uint64 // bumped on every successful update
}

// Store coordinates updates from the refresh command with reads from the UI.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Update replaces the departure list. It always reflects the most recent
// successful fetch.
func (s *Store) Update(list vasttrafik.DepartureList) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	s.snapshot.Departures = cloneList(list)
	s.snapshot.HasData = true
	s.snapshot.LastSuccess = now
	s.snapshot.LastAttempt = now
	s.snapshot.LastError = nil
	s.snapshot.ConsecutiveFailures = 0
	s.snapshot.Generation++
}

// Fail records a failed refresh. The previous departure list is kept.
func (s *Store) Fail(err error) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.LastError = err
	s.snapshot.LastAttempt = time.Now()
	s.snapshot.ConsecutiveFailures++
	return s.snapshot.ConsecutiveFailures
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Departures = cloneList(s.snapshot.Departures)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

// cloneList copies the result slice. The departures' pointer fields are shared,
// which is fine because nothing mutates them after decoding.
func cloneList(list vasttrafik.DepartureList) vasttrafik.DepartureList {
	out := vasttrafik.DepartureList{HasResults: list.HasResults}
	if len(list.Results) == 0 {
		return out
	}
	out.Results = make([]vasttrafik.Departure, len(list.Results))
	copy(out.Results, list.Results)
	return out
}
