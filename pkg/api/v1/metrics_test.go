package v1

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dkowalski/logsentinel/internal/metrics"
	"github.com/dkowalski/logsentinel/internal/model"
	"github.com/dkowalski/logsentinel/pkg/models"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
)

func TestMetricsHandler_Metrics(t *testing.T) {
	snapshot := metrics.NewSnapshot()
	snapshot.RecordPrediction("web_server", models.Verdict{Score: 1.0, IsAnomaly: 1, Cause: models.CauseRule})

	router := mux.NewRouter()
	NewMetricsHandler(snapshot, model.NewService(model.Config{}, testLogger()), testLogger()).RegisterRoutes(router)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/metrics", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body models.ServiceMetrics
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, int64(1), body.PredictionCount)
	require.Equal(t, int64(1), body.AnomalyCount)
}
