package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFieldValue_Numeric(t *testing.T) {
	v := Numeric(42.5)
	assert.True(t, v.IsNumeric())
	assert.Equal(t, "42.5", v.String())
}

func TestFieldValue_Text(t *testing.T) {
	v := TextValue("ERROR")
	assert.False(t, v.IsNumeric())
	assert.Equal(t, "ERROR", v.String())
}

func TestParsedRecord_NumericField(t *testing.T) {
	p := &ParsedRecord{
		Fields: map[string]FieldValue{
			"response_time": Numeric(2500),
			"level":         TextValue("ERROR"),
		},
	}

	v, ok := p.NumericField("response_time")
	assert.True(t, ok)
	assert.Equal(t, 2500.0, v)

	_, ok = p.NumericField("level")
	assert.False(t, ok, "text field should not be returned as numeric")

	_, ok = p.NumericField("missing")
	assert.False(t, ok)
}

func TestAnomalyRecord_Clone(t *testing.T) {
	original := &AnomalyRecord{
		Service:  "web_server",
		Features: []float64{1, 2, 3},
		Metadata: map[string]string{"violated_rule": "response_time"},
		Context:  map[string]float64{"threshold": 2000},
	}

	clone := original.Clone()
	clone.Features[0] = 99
	clone.Metadata["violated_rule"] = "changed"
	clone.Context["threshold"] = 1

	assert.Equal(t, 1.0, original.Features[0], "clone must not alias the original slice")
	assert.Equal(t, "response_time", original.Metadata["violated_rule"], "clone must not alias the original map")
	assert.Equal(t, 2000.0, original.Context["threshold"])
}

func TestThresholdRuleSet_ResolveFor(t *testing.T) {
	rules := &ThresholdRuleSet{
		Rules: map[string]map[string]float64{
			"web_server":      {"response_time": 2000},
			DefaultServiceKey: {"error_rate": 0.5},
		},
		FieldOrder: map[string][]string{
			"web_server":      {"response_time"},
			DefaultServiceKey: {"error_rate"},
		},
	}

	r, order := rules.ResolveFor("web_server")
	assert.Equal(t, 2000.0, r["response_time"])
	assert.Equal(t, []string{"response_time"}, order)

	r, order = rules.ResolveFor("unknown_service")
	assert.Equal(t, 0.5, r["error_rate"])
	assert.Equal(t, []string{"error_rate"}, order)

	empty := &ThresholdRuleSet{}
	r, order = empty.ResolveFor("anything")
	assert.Nil(t, r)
	assert.Nil(t, order)
}

func TestAlertRuleSet_ResolveFor(t *testing.T) {
	rules := &AlertRuleSet{
		Rules: map[string]AlertRule{
			"web_server": {Count: 5, WindowSeconds: 60},
		},
	}

	r, ok := rules.ResolveFor("web_server")
	assert.True(t, ok)
	assert.Equal(t, 5, r.Count)

	_, ok = rules.ResolveFor("unknown")
	assert.False(t, ok)
}
