package alerting

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Sink delivers an Event to one external system. Implementations return
// an error classifiable by isRetryable; the dispatcher owns retry
// policy, not the sink.
type Sink interface {
	Name() string
	Send(ctx context.Context, event Event) error
}

// httpClient is shared by every HTTP-based sink.
var httpClient = &http.Client{Timeout: dispatchTimeout}

// httpPostJSON posts body (marshaled as JSON) to url and classifies the
// response: 2xx is success, anything else becomes an httpStatusError so
// the dispatcher can decide whether to retry.
func httpPostJSON(ctx context.Context, url string, body interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("alerting: marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("alerting: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &httpStatusError{StatusCode: resp.StatusCode}
	}
	return nil
}

// SlackSink posts a Slack-compatible incoming-webhook payload.
type SlackSink struct {
	WebhookURL string
}

func (s *SlackSink) Name() string { return "slack" }

func (s *SlackSink) Send(ctx context.Context, event Event) error {
	text := fmt.Sprintf("high_anomaly_rate: %s saw %d anomalies in %ds", event.Service, event.Count, event.WindowSeconds)
	return httpPostJSON(ctx, s.WebhookURL, map[string]string{"text": text})
}

// PagerDutySink triggers a PagerDuty Events v2 incident.
type PagerDutySink struct {
	RoutingKey string
	EventsURL  string // overridable for tests; defaults to the PagerDuty Events API
}

func (p *PagerDutySink) Name() string { return "pagerduty" }

func (p *PagerDutySink) Send(ctx context.Context, event Event) error {
	url := p.EventsURL
	if url == "" {
		url = "https://events.pagerduty.com/v2/enqueue"
	}

	body := map[string]interface{}{
		"routing_key":  p.RoutingKey,
		"event_action": "trigger",
		"payload": map[string]interface{}{
			"summary":   fmt.Sprintf("high_anomaly_rate: %s", event.Service),
			"source":    event.Service,
			"severity":  "warning",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"custom_details": map[string]interface{}{
				"count":          event.Count,
				"window_seconds": event.WindowSeconds,
			},
		},
	}
	return httpPostJSON(ctx, url, body)
}

// GenericWebhookSink posts the raw Event as JSON to an arbitrary URL.
type GenericWebhookSink struct {
	WebhookURL string
}

func (g *GenericWebhookSink) Name() string { return "generic_webhook" }

func (g *GenericWebhookSink) Send(ctx context.Context, event Event) error {
	return httpPostJSON(ctx, g.WebhookURL, event)
}
