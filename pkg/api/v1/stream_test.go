package v1

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dkowalski/logsentinel/internal/alerting"
	"github.com/dkowalski/logsentinel/internal/history"
	"github.com/dkowalski/logsentinel/internal/metrics"
	"github.com/dkowalski/logsentinel/internal/model"
	"github.com/dkowalski/logsentinel/internal/orchestrator"
	"github.com/dkowalski/logsentinel/pkg/models"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
)

func newTestOrchestrator() *orchestrator.Orchestrator {
	ruleSet := &models.ThresholdRuleSet{
		Rules:      map[string]map[string]float64{"web_server": {"response_time": 2000}},
		FieldOrder: map[string][]string{"web_server": {"response_time"}},
	}
	return &orchestrator.Orchestrator{
		Model:      model.NewService(model.Config{AnomalyThreshold: 0.75}, testLogger()),
		Rules:      ruleSet,
		History:    history.New(500),
		Aggregator: alerting.NewAggregator(&models.AlertRuleSet{}, testLogger()),
		Metrics:    metrics.NewSnapshot(),
		Log:        testLogger(),
	}
}

func TestStreamHandler_RuleViolation(t *testing.T) {
	router := mux.NewRouter()
	NewStreamHandler(newTestOrchestrator(), testLogger()).RegisterRoutes(router)

	body, err := json.Marshal(streamRequest{
		Logs: []models.LogRecord{
			{RawLog: `{"response_time": 2500}`, Service: "web_server", Source: "nginx", FormatType: models.FormatJSON},
		},
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/stream/multi-source", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var verdicts []models.PublicVerdict
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &verdicts))
	require.Len(t, verdicts, 1)
	require.Equal(t, 1, verdicts[0].IsAnomaly)
}

func TestStreamHandler_EmptyLogsReturns400(t *testing.T) {
	router := mux.NewRouter()
	NewStreamHandler(newTestOrchestrator(), testLogger()).RegisterRoutes(router)

	body, err := json.Marshal(streamRequest{Logs: nil})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/stream/multi-source", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "detail")
}

func TestStreamHandler_MalformedBodyReturns400(t *testing.T) {
	router := mux.NewRouter()
	NewStreamHandler(newTestOrchestrator(), testLogger()).RegisterRoutes(router)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/stream/multi-source", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}
