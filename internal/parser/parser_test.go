package parser

import (
	"testing"

	"github.com/dkowalski/logsentinel/pkg/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func TestParse_JSON_RuleViolationScenario(t *testing.T) {
	rec := models.LogRecord{
		RawLog:     `{"response_time": 2500}`,
		Service:    "web_server",
		Source:     "nginx",
		FormatType: models.FormatJSON,
	}

	out := Parse(rec, testLogger())

	v, ok := out.NumericField("response_time")
	assert.True(t, ok)
	assert.Equal(t, 2500.0, v)
	assert.Equal(t, "web_server", out.Service)
	assert.Equal(t, "nginx", out.Source)
}

func TestParse_JSON_NestedFlattening(t *testing.T) {
	rec := models.LogRecord{
		RawLog:     `{"http": {"status": 500, "path": "/api"}, "response_time": "120ms"}`,
		Service:    "web_server",
		FormatType: models.FormatJSON,
	}

	out := Parse(rec, testLogger())

	v, ok := out.NumericField("http.status")
	assert.True(t, ok)
	assert.Equal(t, 500.0, v)

	rt, ok := out.NumericField("response_time")
	assert.True(t, ok)
	assert.Equal(t, 120.0, rt, "ms suffix should be stripped, not scaled")

	path, ok := out.Fields["http.path"]
	assert.True(t, ok)
	assert.False(t, path.IsNumeric())
}

func TestParse_JSON_PercentSuffixNotScaled(t *testing.T) {
	rec := models.LogRecord{
		RawLog:     `{"cpu": "42%"}`,
		FormatType: models.FormatJSON,
	}

	out := Parse(rec, testLogger())

	v, ok := out.NumericField("cpu")
	assert.True(t, ok)
	assert.Equal(t, 42.0, v, "%% must be stripped, not divided by 100")
}

func TestParse_JSON_Malformed_DegeneratesGracefully(t *testing.T) {
	rec := models.LogRecord{
		RawLog:     `{not valid json`,
		Service:    "web_server",
		Source:     "nginx",
		FormatType: models.FormatJSON,
	}

	out := Parse(rec, testLogger())

	assert.Equal(t, "web_server", out.Service)
	assert.Equal(t, "nginx", out.Source)
	assert.Empty(t, out.Fields)
	assert.False(t, out.Timestamp.IsZero())
}

func TestParse_KeyValue_WithTimestampAndLevel(t *testing.T) {
	rec := models.LogRecord{
		RawLog:     `2023-01-01T00:00:00Z ERROR request failed response_time=2500ms retries=3`,
		Service:    "web_server",
		FormatType: models.FormatKeyValue,
	}

	out := Parse(rec, testLogger())

	assert.Equal(t, "ERROR", out.Level)
	assert.Equal(t, 2023, out.Timestamp.Year())

	rt, ok := out.NumericField("response_time")
	assert.True(t, ok)
	assert.Equal(t, 2500.0, rt)

	retries, ok := out.NumericField("retries")
	assert.True(t, ok)
	assert.Equal(t, 3.0, retries)
}

func TestParse_KeyValue_NoTimestampFallsBackToNow(t *testing.T) {
	rec := models.LogRecord{
		RawLog:     `status=ok count=1`,
		FormatType: models.FormatKeyValue,
	}

	out := Parse(rec, testLogger())
	assert.False(t, out.Timestamp.IsZero())
}

func TestParse_Regex_FieldMapping(t *testing.T) {
	rec := models.LogRecord{
		RawLog:     `2023-01-01T00:00:00Z ERROR response_time=2500`,
		Service:    "web_server",
		FormatType: models.FormatRegex,
		CustomConfig: &models.CustomConfig{
			Pattern: `^(\S+) (\S+) response_time=(\d+)`,
			FieldMapping: map[string]string{
				"1": "timestamp",
				"2": "level",
				"3": "response_time",
			},
		},
	}

	out := Parse(rec, testLogger())

	assert.Equal(t, "ERROR", out.Level)
	assert.Equal(t, 2023, out.Timestamp.Year())

	rt, ok := out.NumericField("response_time")
	assert.True(t, ok)
	assert.Equal(t, 2500.0, rt)
}

func TestParse_Regex_MissingConfig_Degenerates(t *testing.T) {
	rec := models.LogRecord{
		RawLog:     `anything`,
		Service:    "web_server",
		Source:     "custom",
		FormatType: models.FormatRegex,
	}

	out := Parse(rec, testLogger())

	assert.Equal(t, "web_server", out.Service)
	assert.Equal(t, "custom", out.Source)
	assert.Empty(t, out.Fields)
}

func TestParse_Regex_NoMatch_Degenerates(t *testing.T) {
	rec := models.LogRecord{
		RawLog:     `totally unrelated text`,
		FormatType: models.FormatRegex,
		CustomConfig: &models.CustomConfig{
			Pattern:      `^(\d+)-(\d+)$`,
			FieldMapping: map[string]string{"1": "a", "2": "b"},
		},
	}

	out := Parse(rec, testLogger())
	assert.Empty(t, out.Fields)
}

func TestCoerceNumeric(t *testing.T) {
	cases := []struct {
		in      string
		want    float64
		wantOK  bool
	}{
		{"2500", 2500, true},
		{"2500ms", 2500, true},
		{"42%", 42, true},
		{"1.5kb", 1.5, true},
		{"ERROR", 0, false},
		{"", 0, false},
	}

	for _, c := range cases {
		got, ok := coerceNumeric(c.in)
		assert.Equal(t, c.wantOK, ok, c.in)
		if c.wantOK {
			assert.Equal(t, c.want, got, c.in)
		}
	}
}
