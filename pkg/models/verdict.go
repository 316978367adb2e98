package models

// Cause names which layer of the decision engine produced a verdict.
type Cause string

// Cause values.
const (
	CauseRule  Cause = "rule"
	CauseModel Cause = "model"
	CauseNone  Cause = "none"
)

// Evidence is attached to rule-caused verdicts, explaining which rule
// fired.
type Evidence struct {
	RuleName    string  `json:"rule_name"`
	Threshold   float64 `json:"threshold"`
	ActualValue float64 `json:"actual_value"`
}

// Verdict is the per-log decision. Only Score and IsAnomaly are ever
// serialized back to the stream-request caller; Cause and Evidence feed
// the internal pipeline (history, aggregator).
type Verdict struct {
	Score     float64   `json:"score"`
	IsAnomaly int       `json:"is_anomaly"`
	Cause     Cause     `json:"-"`
	Evidence  *Evidence `json:"-"`
}

// PublicVerdict is the shape returned to API callers: score and
// is_anomaly only, per spec.
type PublicVerdict struct {
	Score     float64 `json:"score"`
	IsAnomaly int     `json:"is_anomaly"`
}

// Public strips a Verdict down to its caller-visible fields.
func (v Verdict) Public() PublicVerdict {
	return PublicVerdict{Score: v.Score, IsAnomaly: v.IsAnomaly}
}
