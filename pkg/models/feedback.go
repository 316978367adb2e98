package models

import "time"

// FeedbackEntry is a ground-truth label submitted for a previously seen
// (or synthetic) log, consumed by the next training pass.
type FeedbackEntry struct {
	Log        LogRecord `json:"log"`
	IsAnomaly  int       `json:"is_anomaly"`
	IngestTime time.Time `json:"ingest_time"`
}

// ServiceMetrics is the JSON body returned by GET /metrics.
type ServiceMetrics struct {
	PredictionCount int64     `json:"prediction_count"`
	AnomalyCount    int64     `json:"anomaly_count"`
	LastTrained     time.Time `json:"last_trained,omitempty"`
	FeedbackCount   int64     `json:"feedback_received"`
	ModelAccuracy   float64   `json:"model_accuracy"`
}
