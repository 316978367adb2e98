package v1

import (
	"net/http"
	"strconv"

	"github.com/dkowalski/logsentinel/internal/history"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// AnomaliesHandler serves the anomaly history endpoints.
type AnomaliesHandler struct {
	history *history.History
	log     *logrus.Logger
}

// NewAnomaliesHandler constructs an AnomaliesHandler.
func NewAnomaliesHandler(h *history.History, log *logrus.Logger) *AnomaliesHandler {
	return &AnomaliesHandler{history: h, log: log}
}

// RegisterRoutes registers the anomaly history routes.
func (h *AnomaliesHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/v1/anomalies", h.List).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/anomalies", h.Clear).Methods(http.MethodDelete)
}

// List returns the limit most-recently-observed anomalies, newest
// first. limit defaults to history.DefaultRecentLimit and is clamped to
// history.MaxRecentLimit.
func (h *AnomaliesHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := history.DefaultRecentLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			respondError(w, h.log, http.StatusBadRequest, "limit must be an integer")
			return
		}
		limit = parsed
	}

	respondJSON(w, h.log, http.StatusOK, h.history.Recent(limit))
}

type clearResponse struct {
	Message string `json:"message"`
}

// Clear empties the anomaly history.
func (h *AnomaliesHandler) Clear(w http.ResponseWriter, r *http.Request) {
	h.history.Clear()
	respondJSON(w, h.log, http.StatusOK, clearResponse{Message: "anomaly history cleared"})
}
