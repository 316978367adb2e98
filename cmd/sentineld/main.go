// Command sentineld runs the log anomaly detection service: it parses
// incoming log batches, scores them against configurable thresholds and
// a trained outlier model, and dispatches alerts when anomaly rates
// spike.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/dkowalski/logsentinel/internal/alerting"
	"github.com/dkowalski/logsentinel/internal/history"
	"github.com/dkowalski/logsentinel/internal/metrics"
	"github.com/dkowalski/logsentinel/internal/model"
	"github.com/dkowalski/logsentinel/internal/orchestrator"
	"github.com/dkowalski/logsentinel/pkg/api/v1"
	"github.com/dkowalski/logsentinel/pkg/config"
	"github.com/dkowalski/logsentinel/pkg/middleware"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

const (
	readTimeout     = 15 * time.Second
	writeTimeout    = 15 * time.Second
	idleTimeout     = 60 * time.Second
	shutdownTimeout = 10 * time.Second
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("failed to load configuration")
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	modelService := model.NewService(model.Config{
		ModelPath:        cfg.ModelPath,
		Contamination:    cfg.ModelContamination,
		AnomalyThreshold: cfg.AnomalyThreshold,
		FeedbackCapacity: cfg.FeedbackCapacity,
	}, log)

	snapshot := metrics.NewSnapshot()
	modelService.OnTrainingComplete(snapshot.RecordTraining)

	if err := modelService.Load(); err != nil {
		log.WithError(err).Warn("failed to load persisted model, starting untrained")
	}

	anomalyHistory := history.New(cfg.MaxRecentAnomalies)
	aggregator := alerting.NewAggregator(cfg.AlertRules, log)

	sinks := buildSinks(cfg, log)
	dispatcher := alerting.NewDispatcher(sinks, log)

	orch := &orchestrator.Orchestrator{
		Model:      modelService,
		Rules:      cfg.ThresholdRules,
		History:    anomalyHistory,
		Aggregator: aggregator,
		Metrics:    snapshot,
		Log:        log,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go dispatcher.Run(ctx, aggregator.Events())

	router := mux.NewRouter()
	router.Use(middleware.Recovery(log))
	router.Use(middleware.RequestLogging(log))

	v1.NewRootHandler(log).RegisterRoutes(router)
	v1.NewMetricsHandler(snapshot, modelService, log).RegisterRoutes(router)
	v1.NewStreamHandler(orch, log).RegisterRoutes(router)
	v1.NewAnomaliesHandler(anomalyHistory, log).RegisterRoutes(router)
	v1.NewTrainHandler(orch, log).RegisterRoutes(router)
	v1.NewFeedbackHandler(orch, log).RegisterRoutes(router)
	router.Handle("/prometheus-metrics", promhttp.Handler()).Methods(http.MethodGet)

	addr := cfg.APIHost + ":" + strconv.Itoa(cfg.APIPort)
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	go func() {
		log.WithField("addr", addr).Info("logsentinel listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
}

func buildSinks(cfg *config.Config, log *logrus.Logger) []alerting.Sink {
	var sinks []alerting.Sink

	if cfg.SlackWebhookURL != "" {
		sinks = append(sinks, &alerting.SlackSink{WebhookURL: cfg.SlackWebhookURL})
	}
	if cfg.PagerDutyRoutingKey != "" {
		sinks = append(sinks, &alerting.PagerDutySink{RoutingKey: cfg.PagerDutyRoutingKey})
	}
	if cfg.GenericWebhookURL != "" {
		sinks = append(sinks, &alerting.GenericWebhookSink{WebhookURL: cfg.GenericWebhookURL})
	}

	if len(sinks) == 0 {
		log.Warn("no alert sinks configured; high_anomaly_rate events will be dropped silently")
	}

	return sinks
}
