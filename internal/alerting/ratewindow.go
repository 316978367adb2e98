package alerting

import (
	"sync"
	"time"

	"github.com/dkowalski/logsentinel/pkg/models"
)

// rateWindow is the append-only (then pruned) sequence of anomalies for
// one service, bounded at prune time to records within windowSeconds of
// "now".
type rateWindow struct {
	mu            sync.Mutex
	records       []*models.AnomalyRecord
	windowSeconds int
}

// observe appends record, prunes entries older than the window, and
// reports whether the window has reached count entries. If it has, the
// window is reset (emptied) as part of the same call so the next alert
// requires a fresh full accumulation; the pre-reset contents are
// returned as the alert's sample.
func (w *rateWindow) observe(record *models.AnomalyRecord, now time.Time, count int) (fired bool, sample []*models.AnomalyRecord) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.records = append(w.records, record)
	w.prune(now)

	if len(w.records) < count {
		return false, nil
	}

	sample = make([]*models.AnomalyRecord, len(w.records))
	copy(sample, w.records)
	w.records = nil
	return true, sample
}

func (w *rateWindow) prune(now time.Time) {
	cutoff := now.Add(-time.Duration(w.windowSeconds) * time.Second)
	kept := w.records[:0]
	for _, r := range w.records {
		if !r.Timestamp.Before(cutoff) {
			kept = append(kept, r)
		}
	}
	w.records = kept
}

// len reports the current window size, for tests and diagnostics.
func (w *rateWindow) len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.records)
}
