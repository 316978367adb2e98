package alerting

import (
	"context"
	"time"

	"github.com/dkowalski/logsentinel/internal/metrics"
	"github.com/sirupsen/logrus"
)

// Dispatcher pops Events off an Aggregator's channel and delivers each
// to every configured Sink independently: one sink failing never blocks
// or drops delivery to another.
type Dispatcher struct {
	sinks []Sink
	log   *logrus.Logger
}

// NewDispatcher constructs a Dispatcher over the given sinks.
func NewDispatcher(sinks []Sink, log *logrus.Logger) *Dispatcher {
	return &Dispatcher{sinks: sinks, log: log}
}

// Run consumes events until the channel is closed or ctx is canceled.
// Each event is fanned out to every sink concurrently.
func (d *Dispatcher) Run(ctx context.Context, events <-chan Event) {
	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			d.dispatch(ctx, event)
		case <-ctx.Done():
			return
		}
	}
}

func (d *Dispatcher) dispatch(ctx context.Context, event Event) {
	for _, sink := range d.sinks {
		go d.deliverWithRetry(ctx, sink, event)
	}
}

func (d *Dispatcher) deliverWithRetry(ctx context.Context, sink Sink, event Event) {
	ctx, cancel := context.WithTimeout(ctx, dispatchTimeout)
	defer cancel()

	var lastErr error
attempts:
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		lastErr = sink.Send(ctx, event)
		if lastErr == nil {
			metrics.RecordDispatch(sink.Name(), "success")
			return
		}

		if !isRetryable(lastErr) {
			metrics.RecordDispatch(sink.Name(), "permanent_failure")
			d.log.WithFields(logrus.Fields{
				"sink":    sink.Name(),
				"service": event.Service,
			}).WithError(lastErr).Warn("alerting: permanent sink failure, dropping")
			return
		}

		if attempt == maxAttempts {
			break
		}

		select {
		case <-time.After(backoffDelay(attempt)):
		case <-ctx.Done():
			lastErr = ctx.Err()
			break attempts
		}
	}

	metrics.RecordDispatch(sink.Name(), "retries_exhausted")
	d.log.WithFields(logrus.Fields{
		"sink":     sink.Name(),
		"service":  event.Service,
		"attempts": maxAttempts,
	}).WithError(lastErr).Error("alerting: sink delivery failed after retries")
}
