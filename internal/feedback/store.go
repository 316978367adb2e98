// Package feedback captures ground-truth labels submitted by callers,
// bounded in size, for a later training pass to consume.
package feedback

import (
	"sync"

	"github.com/dkowalski/logsentinel/pkg/models"
)

// DefaultCapacity bounds the store when none is configured.
const DefaultCapacity = 10000

// Store is a bounded, thread-safe collection of FeedbackEntry values.
// Appending past capacity drops the oldest entry. The store never
// triggers retraining itself; whatever schedules training consumes
// Entries() on its own terms.
type Store struct {
	mu       sync.Mutex
	entries  []models.FeedbackEntry
	capacity int
}

// NewStore creates a Store bounded to capacity. A non-positive capacity
// is replaced with DefaultCapacity.
func NewStore(capacity int) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Store{capacity: capacity}
}

// Append adds entry, dropping the oldest entry first if the store is
// already at capacity.
func (s *Store) Append(entry models.FeedbackEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.entries) >= s.capacity {
		s.entries = s.entries[1:]
	}
	s.entries = append(s.entries, entry)
}

// Entries returns a snapshot copy of all stored entries, oldest first.
func (s *Store) Entries() []models.FeedbackEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.FeedbackEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Len reports how many entries are currently stored.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
