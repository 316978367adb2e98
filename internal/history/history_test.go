package history

import (
	"testing"

	"github.com/dkowalski/logsentinel/pkg/models"
	"github.com/stretchr/testify/assert"
)

func rec(service string) *models.AnomalyRecord {
	return &models.AnomalyRecord{Service: service}
}

// TestHistory_CapacityEvictsOldest mirrors the documented scenario:
// cap=3, insert A-E, recent(10) = [E,D,C], then clear() -> recent(10) = [].
func TestHistory_CapacityEvictsOldest(t *testing.T) {
	h := New(3)
	for _, name := range []string{"A", "B", "C", "D", "E"} {
		h.Append(rec(name))
	}

	recent := h.Recent(10)
	require := []string{"E", "D", "C"}
	assert.Len(t, recent, 3)
	for i, name := range require {
		assert.Equal(t, name, recent[i].Service)
	}

	h.Clear()
	assert.Empty(t, h.Recent(10))
}

func TestHistory_RecentDefaultsAndClamps(t *testing.T) {
	h := New(5)
	for i := 0; i < 5; i++ {
		h.Append(rec("x"))
	}

	assert.Len(t, h.Recent(0), 5, "non-positive limit uses DefaultRecentLimit")
	assert.Len(t, h.Recent(-1), 5)
	assert.Len(t, h.Recent(100000), 5, "limit is clamped by available records")
}

func TestHistory_NonPositiveCapacityUsesDefault(t *testing.T) {
	h := New(0)
	assert.Equal(t, DefaultCapacity, h.capacity)
}
