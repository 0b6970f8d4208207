// Package state owns the simulation's mutable state. PipelineState,
// ExportState, OverlayState and the log stream all live in one AppState
// behind one mutex; HTTP handlers and timer callbacks go through Update
// so their mutations interleave atomically, never in parallel.
package state

import (
	"sync"

	"github.com/logiflow/logiflow-backend/internal/pipeline/domain"
)

// Store is the in-memory container for session state. There is no
// persistence; every process start begins from empty state.
type Store struct {
	mu    sync.RWMutex
	state domain.AppState
}

// NewStore creates a store holding fresh session state
func NewStore() *Store {
	return &Store{state: domain.NewAppState()}
}

// Update applies fn to the state under the write lock.
// Everything fn does is atomic relative to Snapshot readers.
func (s *Store) Update(fn func(*domain.AppState)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.state)
}

// Snapshot returns a copy of the current state. Slices reachable from the
// snapshot are copied so callers never observe a later in-place append.
func (s *Store) Snapshot() domain.AppState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.state
	snap.Pipeline.Logs = append([]domain.LogEntry(nil), s.state.Pipeline.Logs...)
	snap.Pipeline.Results = append([]domain.ResultRecord(nil), s.state.Pipeline.Results...)
	if s.state.Overlay.Preview != nil {
		preview := *s.state.Overlay.Preview
		snap.Overlay.Preview = &preview
	}
	return snap
}
