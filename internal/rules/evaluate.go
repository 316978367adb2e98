// Package rules applies per-service threshold rules to a parsed record,
// producing a deterministic rule-violation verdict.
package rules

import (
	"github.com/dkowalski/logsentinel/pkg/models"
)

// Evaluate resolves the active rule map for rec.Service (falling back to
// __default__) and checks it in the configured field order, stopping at
// the first violation. A field is violated when it is present, numeric,
// and strictly greater than its configured threshold.
func Evaluate(rec models.ParsedRecord, ruleSet *models.ThresholdRuleSet) (bool, *models.Evidence) {
	active, order := ruleSet.ResolveFor(rec.Service)
	if len(active) == 0 {
		return false, nil
	}

	for _, fieldName := range order {
		threshold, ok := active[fieldName]
		if !ok {
			continue
		}
		actual, ok := rec.NumericField(fieldName)
		if !ok {
			continue
		}
		if actual > threshold {
			return true, &models.Evidence{
				RuleName:    fieldName,
				Threshold:   threshold,
				ActualValue: actual,
			}
		}
	}

	return false, nil
}
