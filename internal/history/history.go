// Package history maintains a bounded, thread-safe ring of recently
// observed anomalies.
package history

import (
	"sync"

	"github.com/dkowalski/logsentinel/pkg/models"
)

// DefaultCapacity is MAX_RECENT_ANOMALIES's default.
const DefaultCapacity = 500

// DefaultRecentLimit is the default `limit` for Recent when the caller
// doesn't specify one.
const DefaultRecentLimit = 100

// MaxRecentLimit bounds how many records a single Recent call may
// return, regardless of the requested limit.
const MaxRecentLimit = 1000

// History is a bounded ring of AnomalyRecords: append evicts the oldest
// entry once at capacity; Recent returns the newest first.
type History struct {
	mu       sync.Mutex
	records  []*models.AnomalyRecord
	capacity int
}

// New creates a History bounded to capacity. A non-positive capacity is
// replaced with DefaultCapacity.
func New(capacity int) *History {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &History{capacity: capacity}
}

// Append adds record, evicting the oldest record first if already at
// capacity.
func (h *History) Append(record *models.AnomalyRecord) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.records) >= h.capacity {
		h.records = h.records[1:]
	}
	h.records = append(h.records, record)
}

// Recent returns up to limit most-recently-appended records, newest
// first. limit is clamped to (0, MaxRecentLimit]; a non-positive limit
// uses DefaultRecentLimit.
func (h *History) Recent(limit int) []*models.AnomalyRecord {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	if limit > MaxRecentLimit {
		limit = MaxRecentLimit
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	n := len(h.records)
	if limit > n {
		limit = n
	}

	out := make([]*models.AnomalyRecord, limit)
	for i := 0; i < limit; i++ {
		out[i] = h.records[n-1-i].Clone()
	}
	return out
}

// Clear removes all records.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = nil
}
