package v1

import (
	"net/http"

	"github.com/dkowalski/logsentinel/internal/metrics"
	"github.com/dkowalski/logsentinel/internal/model"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// MetricsHandler serves the JSON-facing ServiceMetrics snapshot. This is
// distinct from the Prometheus scrape endpoint, which cmd/sentineld
// mounts with promhttp at /prometheus-metrics on the same router.
type MetricsHandler struct {
	snapshot *metrics.Snapshot
	model    *model.Service
	log      *logrus.Logger
}

// NewMetricsHandler constructs a MetricsHandler.
func NewMetricsHandler(snapshot *metrics.Snapshot, modelService *model.Service, log *logrus.Logger) *MetricsHandler {
	return &MetricsHandler{snapshot: snapshot, model: modelService, log: log}
}

// RegisterRoutes registers the metrics API route.
func (h *MetricsHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/v1/metrics", h.Metrics).Methods(http.MethodGet)
}

// Metrics returns the current ServiceMetrics snapshot as JSON.
func (h *MetricsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, h.log, http.StatusOK, h.snapshot.ServiceMetrics(modelAccuracy(h.model)))
}

// modelAccuracy has no ground truth to compute against in this service;
// feedback is retained for an operator-triggered training pass, not
// scored against live predictions. Reported as 0 until that changes.
func modelAccuracy(m *model.Service) float64 {
	if m == nil {
		return 0
	}
	return 0
}
