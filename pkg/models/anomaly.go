package models

import "time"

// AnomalyRecord is the persisted shape of a detected anomaly, kept in the
// bounded in-memory history and used to populate rate-alert samples.
type AnomalyRecord struct {
	ID            string             `json:"id"`
	Timestamp     time.Time          `json:"timestamp"`
	Service       string             `json:"service"`
	Source        string             `json:"source"`
	LogLevel      string             `json:"log_level,omitempty"`
	Message       string             `json:"message"`
	AnomalyScore  float64            `json:"anomaly_score"`
	RuleViolation bool               `json:"rule_violation"`
	Features      []float64          `json:"features,omitempty"`
	RawLog        string             `json:"raw_log"`
	Metadata      map[string]string  `json:"metadata,omitempty"`
	Context       map[string]float64 `json:"context,omitempty"`
}

// Clone returns a deep-enough copy safe to hand to callers outside the
// history's lock (metadata/context maps and the features slice are
// copied; the record otherwise consists of value types).
func (a *AnomalyRecord) Clone() *AnomalyRecord {
	clone := *a
	if a.Features != nil {
		clone.Features = append([]float64(nil), a.Features...)
	}
	if a.Metadata != nil {
		clone.Metadata = make(map[string]string, len(a.Metadata))
		for k, v := range a.Metadata {
			clone.Metadata[k] = v
		}
	}
	if a.Context != nil {
		clone.Context = make(map[string]float64, len(a.Context))
		for k, v := range a.Context {
			clone.Context[k] = v
		}
	}
	return &clone
}
