// Package config provides configuration management for the log
// anomaly detection service.
package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dkowalski/logsentinel/internal/rules"
	"github.com/dkowalski/logsentinel/pkg/models"
)

// Config holds all application configuration, loaded once at startup
// from environment variables.
type Config struct {
	APIHost string `json:"api_host"`
	APIPort int    `json:"api_port"`

	LogLevel string `json:"log_level"`

	ModelPath            string  `json:"model_path"`
	ModelContamination   float64 `json:"model_contamination"`
	AnomalyThreshold     float64 `json:"anomaly_threshold"`
	MaxRecentAnomalies   int     `json:"max_recent_anomalies"`
	FeedbackCapacity     int     `json:"feedback_capacity"`

	ThresholdRules *models.ThresholdRuleSet `json:"-"`
	AlertRules     *models.AlertRuleSet     `json:"-"`

	SlackWebhookURL     string `json:"-"`
	PagerDutyRoutingKey string `json:"-"`
	GenericWebhookURL   string `json:"-"`
}

// Default configuration values.
const (
	DefaultAPIHost            = "0.0.0.0"
	DefaultAPIPort            = 8000
	DefaultLogLevel           = "info"
	DefaultModelPath          = "models/isolation_forest_model.pkl"
	DefaultModelContamination = 0.05
	DefaultAnomalyThreshold   = 0.75
	DefaultMaxRecentAnomalies = 500
	DefaultFeedbackCapacity   = 10000
)

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true, "fatal": true, "panic": true,
}

// Load loads configuration from environment variables, applying
// defaults for anything unset, then validates the result.
func Load() (*Config, error) {
	thresholdRules, err := loadThresholdRuleSet("ALERT_CONDITIONS")
	if err != nil {
		return nil, fmt.Errorf("config: ALERT_CONDITIONS: %w", err)
	}

	alertRules, err := loadAlertRuleSet("COMPLEX_ALERT_RULES")
	if err != nil {
		return nil, fmt.Errorf("config: COMPLEX_ALERT_RULES: %w", err)
	}

	cfg := &Config{
		APIHost:            getEnv("API_HOST", DefaultAPIHost),
		APIPort:            getEnvAsInt("API_PORT", DefaultAPIPort),
		LogLevel:           getEnv("LOG_LEVEL", DefaultLogLevel),
		ModelPath:          getEnv("MODEL_PATH", DefaultModelPath),
		ModelContamination: getEnvAsFloat("MODEL_CONTAMINATION", DefaultModelContamination),
		AnomalyThreshold:   getEnvAsFloat("ANOMALY_THRESHOLD", DefaultAnomalyThreshold),
		MaxRecentAnomalies: getEnvAsInt("MAX_RECENT_ANOMALIES", DefaultMaxRecentAnomalies),
		FeedbackCapacity:   getEnvAsInt("FEEDBACK_CAPACITY", DefaultFeedbackCapacity),

		ThresholdRules: thresholdRules,
		AlertRules:     alertRules,

		SlackWebhookURL:     getEnv("SLACK_WEBHOOK_URL", ""),
		PagerDutyRoutingKey: getEnv("PAGERDUTY_ROUTING_KEY", ""),
		GenericWebhookURL:   getEnv("GENERIC_WEBHOOK_URL", ""),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks the loaded configuration is internally consistent.
func (c *Config) Validate() error {
	var errs []string

	if c.APIPort < 1 || c.APIPort > 65535 {
		errs = append(errs, fmt.Sprintf("invalid api_port: %d (must be 1-65535)", c.APIPort))
	}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		errs = append(errs, fmt.Sprintf("invalid log_level: %s", c.LogLevel))
	}
	if c.ModelPath == "" {
		errs = append(errs, "model_path cannot be empty")
	}
	if c.ModelContamination <= 0 || c.ModelContamination >= 0.5 {
		errs = append(errs, fmt.Sprintf("model_contamination out of range (0, 0.5): %f", c.ModelContamination))
	}
	if c.AnomalyThreshold < 0 {
		errs = append(errs, fmt.Sprintf("anomaly_threshold must be non-negative: %f", c.AnomalyThreshold))
	}
	if c.MaxRecentAnomalies <= 0 {
		errs = append(errs, fmt.Sprintf("max_recent_anomalies must be positive: %d", c.MaxRecentAnomalies))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// SinksEnabled reports whether at least one alert sink is configured.
func (c *Config) SinksEnabled() bool {
	return c.SlackWebhookURL != "" || c.PagerDutyRoutingKey != "" || c.GenericWebhookURL != ""
}

func loadThresholdRuleSet(envKey string) (*models.ThresholdRuleSet, error) {
	raw := getEnv(envKey, "")
	if raw == "" {
		return &models.ThresholdRuleSet{
			Rules:      map[string]map[string]float64{},
			FieldOrder: map[string][]string{},
		}, nil
	}
	return rules.DecodeThresholdRuleSet([]byte(raw))
}

func loadAlertRuleSet(envKey string) (*models.AlertRuleSet, error) {
	raw := getEnv(envKey, "")
	if raw == "" {
		return &models.AlertRuleSet{Rules: map[string]models.AlertRule{}}, nil
	}

	type wireRule struct {
		Count         int `json:"count"`
		WindowSeconds int `json:"window_seconds"`
	}
	var wire map[string]wireRule
	if err := jsonUnmarshal([]byte(raw), &wire); err != nil {
		return nil, err
	}

	ruleSet := &models.AlertRuleSet{Rules: make(map[string]models.AlertRule, len(wire))}
	for service, r := range wire {
		ruleSet.Rules[service] = models.AlertRule{Count: r.Count, WindowSeconds: r.WindowSeconds}
	}
	return ruleSet, nil
}

func getEnvAsFloat(key string, defaultVal float64) float64 {
	valueStr := getEnvRaw(key)
	if valueStr == "" {
		return defaultVal
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultVal
	}
	return value
}
