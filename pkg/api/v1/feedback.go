package v1

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/dkowalski/logsentinel/internal/orchestrator"
	"github.com/dkowalski/logsentinel/pkg/models"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// FeedbackHandler accepts ground-truth labels for previously seen logs.
type FeedbackHandler struct {
	orch *orchestrator.Orchestrator
	log  *logrus.Logger
}

// NewFeedbackHandler constructs a FeedbackHandler.
func NewFeedbackHandler(orch *orchestrator.Orchestrator, log *logrus.Logger) *FeedbackHandler {
	return &FeedbackHandler{orch: orch, log: log}
}

// RegisterRoutes registers the feedback route.
func (h *FeedbackHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/v1/feedback", h.Feedback).Methods(http.MethodPost)
}

type feedbackItem struct {
	Log       models.LogRecord `json:"log"`
	IsAnomaly int              `json:"is_anomaly"`
}

type feedbackRequest struct {
	Feedback []feedbackItem `json:"feedback"`
}

type feedbackResponse struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}

// Feedback records ground-truth labels for future training passes.
func (h *FeedbackHandler) Feedback(w http.ResponseWriter, r *http.Request) {
	var req feedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.log, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if len(req.Feedback) == 0 {
		respondError(w, h.log, http.StatusBadRequest, "no feedback provided")
		return
	}

	now := time.Now().UTC()
	entries := make([]models.FeedbackEntry, len(req.Feedback))
	for i, item := range req.Feedback {
		entries[i] = models.FeedbackEntry{Log: item.Log, IsAnomaly: item.IsAnomaly, IngestTime: now}
	}

	h.orch.IngestFeedback(entries)
	respondJSON(w, h.log, http.StatusOK, feedbackResponse{Message: "feedback recorded", Count: len(entries)})
}
