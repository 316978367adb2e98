// Package v1 provides the HTTP handlers for the log anomaly detection
// service's API surface.
package v1

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
)

// errorResponse is the {detail: string} error shape every endpoint
// returns on failure.
type errorResponse struct {
	Detail string `json:"detail"`
}

func respondJSON(w http.ResponseWriter, log *logrus.Logger, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.WithError(err).Error("failed to encode JSON response")
	}
}

func respondError(w http.ResponseWriter, log *logrus.Logger, statusCode int, detail string) {
	respondJSON(w, log, statusCode, errorResponse{Detail: detail})
}
