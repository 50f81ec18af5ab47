package monitor

import (
	"sync"
	"time"
)

type fileKey struct {
	step    string
	process string
	file    string
}

// State holds the in-memory first-seen and step-done bookkeeping of the monitor.
type State struct {
	mu        sync.RWMutex
	firstSeen map[fileKey]time.Time
	lastSeen  map[fileKey]time.Time
	stepDone  map[fileKey]bool
}

// NewState creates empty monitoring state.
func NewState() *State {
	return &State{
		firstSeen: make(map[fileKey]time.Time),
		lastSeen:  make(map[fileKey]time.Time),
		stepDone:  make(map[fileKey]bool),
	}
}

// FirstSeen records an observation of file for (step, process) at now and
// returns when it was first observed.
func (s *State) FirstSeen(step, process, file string, now time.Time) time.Time {
	key := fileKey{step: step, process: process, file: file}

	s.mu.Lock()
	defer s.mu.Unlock()
	if last, ok := s.lastSeen[key]; !ok || now.After(last) {
		s.lastSeen[key] = now
	}
	if seen, ok := s.firstSeen[key]; ok {
		return seen
	}
	s.firstSeen[key] = now
	return now
}

// MarkDone records that file passed validation for (step, process).
func (s *State) MarkDone(step, process, file string) {
	s.mu.Lock()
	s.stepDone[fileKey{step: step, process: process, file: file}] = true
	s.mu.Unlock()
}

// IsDone reports whether file passed validation for (step, process).
func (s *State) IsDone(step, process, file string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stepDone[fileKey{step: step, process: process, file: file}]
}

// Prune drops every entry last observed before cutoff and returns how many
// were removed. Files still being observed keep their first-seen time.
func (s *State) Prune(cutoff time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for key, seen := range s.lastSeen {
		if seen.Before(cutoff) {
			delete(s.firstSeen, key)
			delete(s.lastSeen, key)
			delete(s.stepDone, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of tracked files.
func (s *State) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.firstSeen)
}
