package models

// DefaultServiceKey is the fallback key used when a service has no
// service-specific rule or alert configuration.
const DefaultServiceKey = "__default__"

// ThresholdRuleSet maps service -> field name -> numeric upper bound. A
// violation occurs when the parsed field's actual value exceeds the
// bound. FieldOrder preserves the order field names first appeared in the
// source configuration (Go maps have no iteration order of their own),
// so rule evaluation can honor "first violation in insertion order wins"
// per spec.
type ThresholdRuleSet struct {
	Rules      map[string]map[string]float64
	FieldOrder map[string][]string
}

// ResolveFor returns the active rule map and its field order for a
// service, falling back to __default__, falling back to empty.
func (t *ThresholdRuleSet) ResolveFor(service string) (map[string]float64, []string) {
	if t == nil {
		return nil, nil
	}
	if rules, ok := t.Rules[service]; ok {
		return rules, t.FieldOrder[service]
	}
	if rules, ok := t.Rules[DefaultServiceKey]; ok {
		return rules, t.FieldOrder[DefaultServiceKey]
	}
	return nil, nil
}

// AlertRule is the per-service rate-alert configuration: emit an alert
// once `Count` anomalies have accumulated within `WindowSeconds`.
type AlertRule struct {
	Count         int `json:"count"`
	WindowSeconds int `json:"window_seconds"`
}

// AlertRuleSet maps service -> AlertRule, with __default__ fallback.
type AlertRuleSet struct {
	Rules map[string]AlertRule
}

// ResolveFor returns the active alert rule for a service, falling back to
// __default__. ok is false if neither is configured.
func (a *AlertRuleSet) ResolveFor(service string) (AlertRule, bool) {
	if a == nil {
		return AlertRule{}, false
	}
	if r, ok := a.Rules[service]; ok {
		return r, true
	}
	if r, ok := a.Rules[DefaultServiceKey]; ok {
		return r, true
	}
	return AlertRule{}, false
}
