package alerting

import "github.com/dkowalski/logsentinel/pkg/models"

// Event is emitted by the aggregator when a service's anomaly rate
// crosses its configured threshold.
type Event struct {
	Type            string                  `json:"type"`
	Service         string                  `json:"service"`
	Count           int                     `json:"count"`
	WindowSeconds   int                     `json:"window_seconds"`
	SampleAnomalies []*models.AnomalyRecord `json:"sample_anomalies"`
}

// HighAnomalyRate is the only event type the aggregator currently emits.
const HighAnomalyRate = "high_anomaly_rate"

// maxSampleAnomalies caps how many anomalies accompany an Event.
const maxSampleAnomalies = 10
