// Package orchestrator binds the parser, feature extractor, decision
// engine, history, and rate aggregator into the per-batch request
// pipeline, plus the background training supervisor.
package orchestrator

import (
	"context"
	"errors"
	"time"

	"github.com/dkowalski/logsentinel/internal/alerting"
	"github.com/dkowalski/logsentinel/internal/decision"
	"github.com/dkowalski/logsentinel/internal/feature"
	"github.com/dkowalski/logsentinel/internal/history"
	"github.com/dkowalski/logsentinel/internal/metrics"
	"github.com/dkowalski/logsentinel/internal/model"
	"github.com/dkowalski/logsentinel/internal/parser"
	"github.com/dkowalski/logsentinel/pkg/models"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ErrNoLogsProvided is returned when ProcessBatch is called with an
// empty batch; callers surface this as a 400.
var ErrNoLogsProvided = errors.New("orchestrator: no logs provided")

// Orchestrator is the request-level pipeline that binds the parser,
// feature extractor, rule evaluator, model service, history, and rate
// aggregator for one stream-request batch.
type Orchestrator struct {
	Model      *model.Service
	Rules      *models.ThresholdRuleSet
	History    *history.History
	Aggregator *alerting.Aggregator
	Metrics    *metrics.Snapshot
	Log        *logrus.Logger
}

// ProcessBatch parses, featurizes, and decides every log in logs, in
// order, returning one PublicVerdict per input. Anomalies are pushed
// into history and the rate aggregator without blocking the response.
// If ctx is canceled or its deadline is hit before the batch completes,
// the partial response is discarded and ctx.Err() is returned.
func (o *Orchestrator) ProcessBatch(ctx context.Context, logs []models.LogRecord) ([]models.PublicVerdict, error) {
	if len(logs) == 0 {
		return nil, ErrNoLogsProvided
	}

	handle := o.Model.Pin()
	engine := &decision.Engine{Rules: o.Rules, Scorer: handle}

	verdicts := make([]models.PublicVerdict, len(logs))

	for i, rec := range logs {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		parsed := parser.Parse(rec, o.Log)
		vec := feature.Extract(parsed, handle.Schema())
		verdict := engine.Decide(parsed, vec)

		verdicts[i] = verdict.Public()
		o.Metrics.RecordPrediction(rec.Service, verdict)

		if verdict.IsAnomaly == 1 {
			o.recordAnomaly(rec, parsed, verdict)
		}
	}

	return verdicts, nil
}

func (o *Orchestrator) recordAnomaly(rec models.LogRecord, parsed models.ParsedRecord, verdict models.Verdict) {
	record := &models.AnomalyRecord{
		ID:            uuid.NewString(),
		Service:       rec.Service,
		Source:        rec.Source,
		LogLevel:      parsed.Level,
		Message:       parsed.RawLog,
		RawLog:        parsed.RawLog,
		Timestamp:     parsed.Timestamp,
		AnomalyScore:  verdict.Score,
		RuleViolation: verdict.Cause == models.CauseRule,
		Metadata:      map[string]string{},
		Context:       map[string]float64{},
	}

	if verdict.Evidence != nil {
		record.Metadata["violated_rule"] = verdict.Evidence.RuleName
		record.Context["threshold"] = verdict.Evidence.Threshold
		record.Context["actual_value"] = verdict.Evidence.ActualValue
	}

	o.History.Append(record)
	o.Aggregator.Observe(rec.Service, record, time.Now())
}

// SubmitTraining forwards a training batch, after parsing, to the model
// service.
func (o *Orchestrator) SubmitTraining(logs []models.LogRecord) (string, error) {
	if len(logs) == 0 {
		return "", ErrNoLogsProvided
	}

	parsed := make([]models.ParsedRecord, len(logs))
	for i, rec := range logs {
		parsed[i] = parser.Parse(rec, o.Log)
	}

	return o.Model.SubmitTraining(parsed), nil
}

// IngestFeedback forwards feedback entries to the model service and
// records the count for metrics.
func (o *Orchestrator) IngestFeedback(entries []models.FeedbackEntry) {
	o.Model.IngestFeedback(entries...)
	o.Metrics.RecordFeedback(len(entries))
}
