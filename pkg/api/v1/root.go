package v1

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// RootHandler answers the liveness endpoint.
type RootHandler struct {
	log *logrus.Logger
}

// NewRootHandler constructs a RootHandler.
func NewRootHandler(log *logrus.Logger) *RootHandler {
	return &RootHandler{log: log}
}

// RegisterRoutes registers the root API route.
func (h *RootHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/v1/", h.Root).Methods(http.MethodGet)
}

type rootResponse struct {
	Message string `json:"message"`
}

// Root responds with a fixed liveness message.
func (h *RootHandler) Root(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, h.log, http.StatusOK, rootResponse{Message: "logsentinel is running"})
}
