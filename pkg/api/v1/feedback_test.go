package v1

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dkowalski/logsentinel/pkg/models"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
)

func TestFeedbackHandler_RecordsEntries(t *testing.T) {
	orch := newTestOrchestrator()
	router := mux.NewRouter()
	NewFeedbackHandler(orch, testLogger()).RegisterRoutes(router)

	body, err := json.Marshal(feedbackRequest{
		Feedback: []feedbackItem{
			{Log: models.LogRecord{Service: "web_server"}, IsAnomaly: 1},
		},
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/feedback", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp feedbackResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Count)
	require.Len(t, orch.Model.Feedback(), 1)
}

func TestFeedbackHandler_EmptyFeedbackReturns400(t *testing.T) {
	router := mux.NewRouter()
	NewFeedbackHandler(newTestOrchestrator(), testLogger()).RegisterRoutes(router)

	body, err := json.Marshal(feedbackRequest{Feedback: nil})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/feedback", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}
