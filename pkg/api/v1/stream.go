package v1

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dkowalski/logsentinel/internal/orchestrator"
	"github.com/dkowalski/logsentinel/pkg/models"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// StreamHandler handles the multi-source log ingestion endpoint.
type StreamHandler struct {
	orch *orchestrator.Orchestrator
	log  *logrus.Logger
}

// NewStreamHandler constructs a StreamHandler.
func NewStreamHandler(orch *orchestrator.Orchestrator, log *logrus.Logger) *StreamHandler {
	return &StreamHandler{orch: orch, log: log}
}

// RegisterRoutes registers the stream ingestion route.
func (h *StreamHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/v1/stream/multi-source", h.Stream).Methods(http.MethodPost)
}

type streamRequest struct {
	Logs []models.LogRecord `json:"logs"`
	Tags map[string]string  `json:"tags,omitempty"`
}

// Stream parses, featurizes, and scores every log in the request body,
// in order, and returns one {score, is_anomaly} per input.
func (h *StreamHandler) Stream(w http.ResponseWriter, r *http.Request) {
	var req streamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.log, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	verdicts, err := h.orch.ProcessBatch(r.Context(), req.Logs)
	if err != nil {
		if errors.Is(err, orchestrator.ErrNoLogsProvided) {
			respondError(w, h.log, http.StatusBadRequest, "no logs provided")
			return
		}
		h.log.WithError(err).Error("stream: batch processing failed")
		respondError(w, h.log, http.StatusInternalServerError, "internal server error")
		return
	}

	respondJSON(w, h.log, http.StatusOK, verdicts)
}
