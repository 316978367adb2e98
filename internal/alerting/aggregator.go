package alerting

import (
	"sync"
	"time"

	"github.com/dkowalski/logsentinel/pkg/models"
	"github.com/sirupsen/logrus"
)

// outboundQueueCapacity bounds the aggregator's internal event channel.
// It is bounded-with-drop-oldest rather than unbounded: a sink outage
// that never catches up must not grow memory without limit.
const outboundQueueCapacity = 256

// Aggregator maintains one rateWindow per service and turns threshold
// crossings into Events, handed off to a Dispatcher over a bounded
// channel. Individual anomalies are never alerted on directly; only a
// window's count/window_seconds crossing triggers an Event.
type Aggregator struct {
	rules *models.AlertRuleSet
	log   *logrus.Logger

	mu      sync.Mutex
	windows map[string]*rateWindow

	events chan Event
}

// NewAggregator constructs an Aggregator. Call Events() from a
// Dispatcher (or any consumer) to receive emitted Events.
func NewAggregator(rules *models.AlertRuleSet, log *logrus.Logger) *Aggregator {
	return &Aggregator{
		rules:   rules,
		log:     log,
		windows: make(map[string]*rateWindow),
		events:  make(chan Event, outboundQueueCapacity),
	}
}

// Events returns the channel Events are published on.
func (a *Aggregator) Events() <-chan Event {
	return a.events
}

// Observe records one anomaly for service at time now. If the
// service's window crosses its configured threshold, an Event is
// enqueued (dropping the oldest queued event if the channel is full)
// and the window is reset.
func (a *Aggregator) Observe(service string, record *models.AnomalyRecord, now time.Time) {
	rule, ok := a.rules.ResolveFor(service)
	if !ok {
		return
	}

	w := a.windowFor(service, rule.WindowSeconds)
	fired, sample := w.observe(record, now, rule.Count)
	if !fired {
		return
	}

	event := Event{
		Type:            HighAnomalyRate,
		Service:         service,
		Count:           rule.Count,
		WindowSeconds:   rule.WindowSeconds,
		SampleAnomalies: clampSample(sample),
	}

	select {
	case a.events <- event:
	default:
		// Outbound queue is full: drop the oldest queued event to make
		// room rather than block the caller's anomaly-recording path.
		select {
		case <-a.events:
		default:
		}
		select {
		case a.events <- event:
		default:
			a.log.WithField("service", service).Warn("alerting: dropped high_anomaly_rate event, outbound queue full")
		}
	}
}

func (a *Aggregator) windowFor(service string, windowSeconds int) *rateWindow {
	a.mu.Lock()
	defer a.mu.Unlock()

	w, ok := a.windows[service]
	if !ok {
		w = &rateWindow{windowSeconds: windowSeconds}
		a.windows[service] = w
	}
	return w
}

// clampSample caps sample to the last maxSampleAnomalies records and
// clones each one: the records it returns are handed off to a
// Dispatcher goroutine outside any lock this package holds, and the
// aggregator's own rateWindow may still reference the originals.
func clampSample(sample []*models.AnomalyRecord) []*models.AnomalyRecord {
	if len(sample) > maxSampleAnomalies {
		sample = sample[len(sample)-maxSampleAnomalies:]
	}

	out := make([]*models.AnomalyRecord, len(sample))
	for i, record := range sample {
		out[i] = record.Clone()
	}
	return out
}
