// Package metrics exposes Prometheus counters/histograms/gauges for the
// detection pipeline, and a ServiceMetrics snapshot used by GET /metrics.
package metrics

import (
	"sync/atomic"
	"time"

	"github.com/dkowalski/logsentinel/pkg/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PredictionsTotal counts every log scored by the decision engine.
	PredictionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "logsentinel_predictions_total",
			Help: "Total number of logs scored by the decision engine",
		},
		[]string{"service"},
	)

	// AnomaliesTotal counts logs flagged as anomalous, by cause.
	AnomaliesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "logsentinel_anomalies_total",
			Help: "Total number of logs flagged anomalous",
		},
		[]string{"service", "cause"},
	)

	// ScoreDistribution tracks the distribution of model scores.
	ScoreDistribution = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "logsentinel_model_score",
			Help:    "Distribution of model anomaly scores",
			Buckets: []float64{0, 0.1, 0.25, 0.5, 0.75, 0.9, 1.0},
		},
		[]string{"service"},
	)

	// TrainingRunsTotal counts completed training jobs by outcome.
	TrainingRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "logsentinel_training_runs_total",
			Help: "Total number of completed training runs",
		},
		[]string{"outcome"},
	)

	// AlertDispatchTotal counts alert deliveries by sink and terminal
	// outcome (one increment per delivery, not per retry attempt).
	AlertDispatchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "logsentinel_alert_dispatch_total",
			Help: "Total number of alert deliveries by terminal outcome",
		},
		[]string{"sink", "outcome"},
	)

	// BatchDuration measures stream request processing time.
	BatchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "logsentinel_batch_duration_seconds",
			Help:    "Time taken to process a stream request batch",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"outcome"},
	)
)

// Snapshot accumulates the plain counters ServiceMetrics reports over
// JSON, alongside the Prometheus vectors above. Prometheus counters
// aren't readable back out cheaply per-request, so the JSON-facing
// counts are tracked independently with atomics.
type Snapshot struct {
	predictionCount int64
	anomalyCount    int64
	feedbackCount   int64
	lastTrained     atomic.Value // time.Time
}

// NewSnapshot returns a zeroed Snapshot.
func NewSnapshot() *Snapshot {
	return &Snapshot{}
}

// RecordPrediction records one scored log, incrementing both the
// Prometheus counter and the JSON-facing total.
func (s *Snapshot) RecordPrediction(service string, verdict models.Verdict) {
	atomic.AddInt64(&s.predictionCount, 1)
	PredictionsTotal.WithLabelValues(service).Inc()
	ScoreDistribution.WithLabelValues(service).Observe(verdict.Score)

	if verdict.IsAnomaly == 1 {
		atomic.AddInt64(&s.anomalyCount, 1)
		AnomaliesTotal.WithLabelValues(service, string(verdict.Cause)).Inc()
	}
}

// RecordFeedback increments the feedback-received counter.
func (s *Snapshot) RecordFeedback(n int) {
	atomic.AddInt64(&s.feedbackCount, int64(n))
}

// RecordTraining records a completed training run's outcome and
// timestamp.
func (s *Snapshot) RecordTraining(succeeded bool, at time.Time) {
	outcome := "success"
	if !succeeded {
		outcome = "failure"
	}
	TrainingRunsTotal.WithLabelValues(outcome).Inc()
	if succeeded {
		s.lastTrained.Store(at)
	}
}

// RecordDispatch records the terminal outcome of one sink delivery.
func RecordDispatch(sink, outcome string) {
	AlertDispatchTotal.WithLabelValues(sink, outcome).Inc()
}

// ServiceMetrics renders the current state as the JSON shape GET
// /metrics returns. modelAccuracy is supplied by the caller since it is
// model-specific state this package doesn't own.
func (s *Snapshot) ServiceMetrics(modelAccuracy float64) models.ServiceMetrics {
	var lastTrained time.Time
	if v := s.lastTrained.Load(); v != nil {
		lastTrained = v.(time.Time)
	}

	return models.ServiceMetrics{
		PredictionCount: atomic.LoadInt64(&s.predictionCount),
		AnomalyCount:    atomic.LoadInt64(&s.anomalyCount),
		LastTrained:     lastTrained,
		FeedbackCount:   atomic.LoadInt64(&s.feedbackCount),
		ModelAccuracy:   modelAccuracy,
	}
}
