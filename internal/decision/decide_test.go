package decision

import (
	"testing"

	"github.com/dkowalski/logsentinel/internal/feature"
	"github.com/dkowalski/logsentinel/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeScorer struct {
	score     float64
	isAnomaly bool
}

func (f *fakeScorer) Score(vec feature.Vector) float64   { return f.score }
func (f *fakeScorer) IsAnomalyByModel(score float64) bool { return f.isAnomaly }

func TestDecide_RuleViolationShortCircuitsModel(t *testing.T) {
	engine := &Engine{
		Rules: &models.ThresholdRuleSet{
			Rules:      map[string]map[string]float64{"web_server": {"response_time": 2000}},
			FieldOrder: map[string][]string{"web_server": {"response_time"}},
		},
		Scorer: &fakeScorer{score: 0.1, isAnomaly: true},
	}

	rec := models.ParsedRecord{
		Service: "web_server",
		Fields:  map[string]models.FieldValue{"response_time": models.Numeric(2500)},
	}

	verdict := engine.Decide(rec, feature.Vector{2500})

	assert.Equal(t, 1.0, verdict.Score)
	assert.Equal(t, 1, verdict.IsAnomaly)
	assert.Equal(t, models.CauseRule, verdict.Cause)
	require.NotNil(t, verdict.Evidence)
}

func TestDecide_UntrainedModelIsNeverAnomalous(t *testing.T) {
	engine := &Engine{
		Rules:  &models.ThresholdRuleSet{},
		Scorer: &fakeScorer{score: 1.0, isAnomaly: false},
	}

	rec := models.ParsedRecord{Service: "web_server", Fields: map[string]models.FieldValue{}}
	verdict := engine.Decide(rec, feature.Vector{})

	assert.Equal(t, 0, verdict.IsAnomaly)
	assert.Equal(t, models.CauseNone, verdict.Cause)
}

func TestDecide_ModelFlagsAnomaly(t *testing.T) {
	engine := &Engine{
		Rules:  &models.ThresholdRuleSet{},
		Scorer: &fakeScorer{score: 0.2, isAnomaly: true},
	}

	rec := models.ParsedRecord{Service: "web_server", Fields: map[string]models.FieldValue{}}
	verdict := engine.Decide(rec, feature.Vector{9999})

	assert.Equal(t, 1, verdict.IsAnomaly)
	assert.Equal(t, models.CauseModel, verdict.Cause)
	assert.Equal(t, 0.2, verdict.Score)
}
