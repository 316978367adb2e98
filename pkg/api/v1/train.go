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

// TrainHandler handles training-job submission.
type TrainHandler struct {
	orch *orchestrator.Orchestrator
	log  *logrus.Logger
}

// NewTrainHandler constructs a TrainHandler.
func NewTrainHandler(orch *orchestrator.Orchestrator, log *logrus.Logger) *TrainHandler {
	return &TrainHandler{orch: orch, log: log}
}

// RegisterRoutes registers the training route.
func (h *TrainHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/v1/train", h.Train).Methods(http.MethodPost)
}

type trainRequest struct {
	Logs []models.LogRecord `json:"logs"`
}

type trainResponse struct {
	Message string `json:"message"`
	JobID   string `json:"job_id"`
}

// Train enqueues a training job against the submitted logs and returns
// immediately with an acknowledgement; the job itself runs on the
// model's background worker.
func (h *TrainHandler) Train(w http.ResponseWriter, r *http.Request) {
	var req trainRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.log, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	jobID, err := h.orch.SubmitTraining(req.Logs)
	if err != nil {
		if errors.Is(err, orchestrator.ErrNoLogsProvided) {
			respondError(w, h.log, http.StatusBadRequest, "no logs provided")
			return
		}
		h.log.WithError(err).Error("train: submission failed")
		respondError(w, h.log, http.StatusInternalServerError, "internal server error")
		return
	}

	respondJSON(w, h.log, http.StatusAccepted, trainResponse{Message: "training job accepted", JobID: jobID})
}
