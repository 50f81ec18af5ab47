package notifier

import (
	"sync"
	"time"
)

// DedupStore remembers which de-dup keys have already been claimed.
type DedupStore interface {
	// TryMark claims key, returning false if it was already claimed.
	TryMark(key string) bool
}

// MemoryDedupStore keeps claimed keys for the lifetime of the process.
type MemoryDedupStore struct {
	mu   sync.Mutex
	sent map[string]time.Time
	now  func() time.Time
}

// NewMemoryDedupStore creates an empty in-memory store
func NewMemoryDedupStore() *MemoryDedupStore {
	return &MemoryDedupStore{
		sent: make(map[string]time.Time),
		now:  time.Now,
	}
}

func (s *MemoryDedupStore) TryMark(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, seen := s.sent[key]; seen {
		return false
	}
	s.sent[key] = s.now().UTC()
	return true
}

// Seen reports whether key has been claimed.
func (s *MemoryDedupStore) Seen(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, seen := s.sent[key]
	return seen
}

// Len returns the number of claimed keys.
func (s *MemoryDedupStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sent)
}

// PruneBefore forgets keys claimed before cutoff and returns how many were removed.
// Keys embed their local date, so pruning entries older than a few days cannot
// re-enable an alert for the current day.
func (s *MemoryDedupStore) PruneBefore(cutoff time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for key, at := range s.sent {
		if at.Before(cutoff) {
			delete(s.sent, key)
			removed++
		}
	}
	return removed
}

// Reset forgets every key.
func (s *MemoryDedupStore) Reset() {
	s.mu.Lock()
	s.sent = make(map[string]time.Time)
	s.mu.Unlock()
}
