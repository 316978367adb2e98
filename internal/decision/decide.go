// Package decision combines the rule evaluator and the model service
// into a single per-log verdict.
package decision

import (
	"github.com/dkowalski/logsentinel/internal/feature"
	"github.com/dkowalski/logsentinel/internal/rules"
	"github.com/dkowalski/logsentinel/pkg/models"
)

// Scorer is the subset of the model service's surface decision needs.
type Scorer interface {
	Score(vec feature.Vector) float64
	IsAnomalyByModel(score float64) bool
}

// Engine wires a ThresholdRuleSet and a model Scorer into Decide.
type Engine struct {
	Rules  *models.ThresholdRuleSet
	Scorer Scorer
}

// Decide runs the rule evaluator first; a rule violation always wins and
// short-circuits the model entirely. Otherwise the model score
// determines the verdict, with an untrained model always reporting
// cause=none and is_anomaly=0.
func (e *Engine) Decide(rec models.ParsedRecord, vec feature.Vector) models.Verdict {
	if violated, evidence := rules.Evaluate(rec, e.Rules); violated {
		return models.Verdict{
			Score:     1.0,
			IsAnomaly: 1,
			Cause:     models.CauseRule,
			Evidence:  evidence,
		}
	}

	score := e.Scorer.Score(vec)
	if !e.Scorer.IsAnomalyByModel(score) {
		return models.Verdict{Score: score, IsAnomaly: 0, Cause: models.CauseNone}
	}

	return models.Verdict{Score: score, IsAnomaly: 1, Cause: models.CauseModel}
}
