// Package model owns the outlier-scoring model: loading it from disk at
// startup, scoring feature vectors, and running training jobs against a
// single background worker.
package model

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/dkowalski/logsentinel/internal/feature"
	"github.com/dkowalski/logsentinel/internal/feedback"
	"github.com/dkowalski/logsentinel/pkg/models"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// boundModel is the (schema, scorer) pair a Score call reads. It is
// replaced wholesale on every successful training pass so a concurrent
// reader never observes a schema from one training run paired with a
// scorer from another.
type boundModel struct {
	schema      feature.Schema
	scorer      *Scorer
	trained     bool
	lastTrained time.Time
}

// Config controls model training and scoring behavior.
type Config struct {
	ModelPath        string
	Contamination    float64
	AnomalyThreshold float64
	FeedbackCapacity int
}

// Service owns the current (schema, model) pair, the background
// training worker, and the feedback store that feeds future training
// passes.
type Service struct {
	cfg      Config
	log      *logrus.Logger
	current  atomic.Pointer[boundModel]
	feedback *feedback.Store

	jobMu   sync.Mutex
	pending *trainingJob
	wake    chan struct{}

	// onTrainingComplete, if set, is invoked after every training job
	// attempt (success or failure) with its outcome and completion
	// time, so callers can wire training metrics without this package
	// importing the metrics package.
	onTrainingComplete func(succeeded bool, at time.Time)
}

// OnTrainingComplete registers a callback invoked after every training
// job attempt. Must be called before any training job can run (i.e.
// immediately after NewService) to avoid missing a notification.
func (s *Service) OnTrainingComplete(fn func(succeeded bool, at time.Time)) {
	s.onTrainingComplete = fn
}

type trainingJob struct {
	id    string
	batch []models.ParsedRecord
}

// NewService constructs a Service in the untrained state and starts its
// background training worker. Call Load to attempt to restore a
// previously persisted model.
func NewService(cfg Config, log *logrus.Logger) *Service {
	s := &Service{
		cfg:      cfg,
		log:      log,
		feedback: feedback.NewStore(cfg.FeedbackCapacity),
		wake:     make(chan struct{}, 1),
	}
	s.current.Store(&boundModel{})
	go s.runWorker()
	return s
}

// Load attempts to restore a persisted (schema, model) pair from
// cfg.ModelPath. A missing file is not an error: the service remains
// untrained.
func (s *Service) Load() error {
	a, err := load(s.cfg.ModelPath)
	if err != nil {
		return err
	}
	if a == nil {
		return nil
	}

	scorer := a.Scorer
	s.current.Store(&boundModel{
		schema:      a.Schema,
		scorer:      &scorer,
		trained:     true,
		lastTrained: a.LastTrained,
	})
	return nil
}

// Snapshot is a consistent read of the service's current state.
type Snapshot struct {
	Schema      feature.Schema
	Trained     bool
	LastTrained time.Time
}

// Current returns a consistent snapshot of the bound (schema, model)
// pair, for feature extraction against the model currently in effect.
func (s *Service) Current() Snapshot {
	b := s.current.Load()
	return Snapshot{Schema: b.schema, Trained: b.trained, LastTrained: b.lastTrained}
}

// Score is synchronous, non-blocking, and read-only against whichever
// (schema, model) pair is bound at call time. An untrained model always
// returns the neutral score.
func (s *Service) Score(vec feature.Vector) float64 {
	return s.Pin().Score(vec)
}

// IsAnomalyByModel reports whether score crosses the configured
// anomaly threshold. An untrained model never reports an anomaly.
func (s *Service) IsAnomalyByModel(score float64) bool {
	return s.Pin().IsAnomalyByModel(score)
}

// Handle is a (schema, scorer) pair read with a single atomic load. A
// predict operation that spans multiple calls (extracting a feature
// vector against the schema, then scoring it) must reuse one Handle for
// both instead of calling Service methods independently: Service.Score
// and Service.IsAnomalyByModel each re-load the current model, so a
// training swap landing between two independent calls could pair an
// old schema's feature vector with a new scorer. Pin once per
// operation and call Schema/Score/IsAnomalyByModel on the result.
type Handle struct {
	b   *boundModel
	cfg Config
}

// Pin reads the current (schema, model) pair once and returns a Handle
// bound to it for the remainder of a predict operation.
func (s *Service) Pin() Handle {
	return Handle{b: s.current.Load(), cfg: s.cfg}
}

// Schema returns the feature schema this Handle is pinned to.
func (h Handle) Schema() feature.Schema {
	return h.b.schema
}

// Trained reports whether the pinned model has completed training.
func (h Handle) Trained() bool {
	return h.b.trained
}

// LastTrained returns the pinned model's last successful training
// time, zero if it has never trained.
func (h Handle) LastTrained() time.Time {
	return h.b.lastTrained
}

// Score scores vec against the pinned model. An untrained model always
// returns the neutral score.
func (h Handle) Score(vec feature.Vector) float64 {
	if !h.b.trained {
		return neutralScore
	}
	return h.b.scorer.Score(vec)
}

// IsAnomalyByModel reports whether score crosses the configured
// anomaly threshold. An untrained model never reports an anomaly.
func (h Handle) IsAnomalyByModel(score float64) bool {
	if !h.b.trained {
		return false
	}
	return score < h.cfg.AnomalyThreshold
}

// SubmitTraining enqueues a training job over batch. If a job is already
// queued, it is replaced by this one (coalesced); if a job is already
// running, this one waits as the sole queued successor. Returns
// immediately with the job's id.
func (s *Service) SubmitTraining(batch []models.ParsedRecord) string {
	job := &trainingJob{id: uuid.NewString(), batch: batch}

	s.jobMu.Lock()
	s.pending = job
	s.jobMu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}

	return job.id
}

// IngestFeedback appends entries to the feedback store. This never
// triggers retraining on its own; whoever schedules training decides
// when to consume Feedback().
func (s *Service) IngestFeedback(entries ...models.FeedbackEntry) {
	for _, e := range entries {
		s.feedback.Append(e)
	}
}

// Feedback returns a snapshot of all feedback entries collected so far.
func (s *Service) Feedback() []models.FeedbackEntry {
	return s.feedback.Entries()
}

// runWorker is the single background goroutine that consumes training
// jobs: at most one runs at a time, and at most one more waits queued
// behind it.
func (s *Service) runWorker() {
	for range s.wake {
		for {
			s.jobMu.Lock()
			job := s.pending
			s.pending = nil
			s.jobMu.Unlock()

			if job == nil {
				break
			}
			s.runTrainingJob(job)
		}
	}
}

func (s *Service) runTrainingJob(job *trainingJob) {
	logEntry := s.log.WithFields(logrus.Fields{"job_id": job.id, "batch_size": len(job.batch)})

	if len(job.batch) == 0 {
		logEntry.Warn("model: training job had an empty batch, retaining prior state")
		s.notifyTrainingComplete(false)
		return
	}

	schema := feature.DeriveSchema(job.batch)
	if len(schema.Names) == 0 {
		logEntry.Warn("model: training batch had no numeric fields, retaining prior state")
		s.notifyTrainingComplete(false)
		return
	}

	vectors := feature.ExtractBatch(job.batch, schema)
	scorer := Fit(vectors, s.cfg.Contamination)
	if scorer == nil || len(scorer.Means) == 0 {
		logEntry.Warn("model: fit produced no model, retaining prior state")
		s.notifyTrainingComplete(false)
		return
	}

	now := time.Now().UTC()
	s.current.Store(&boundModel{
		schema:      schema,
		scorer:      scorer,
		trained:     true,
		lastTrained: now,
	})

	if err := save(s.cfg.ModelPath, artifact{Schema: schema, Scorer: *scorer, LastTrained: now}); err != nil {
		logEntry.WithError(err).Error("model: failed to persist trained model")
		s.notifyTrainingComplete(false)
		return
	}

	logEntry.WithField("feature_count", len(schema.Names)).Info("model: training completed")
	s.notifyTrainingComplete(true)
}

func (s *Service) notifyTrainingComplete(succeeded bool) {
	if s.onTrainingComplete != nil {
		s.onTrainingComplete(succeeded, time.Now().UTC())
	}
}
