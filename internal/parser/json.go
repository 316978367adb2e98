package parser

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/dkowalski/logsentinel/pkg/models"
)

// timestampKeys are tried in order when looking for a timestamp field in
// a decoded JSON object.
var timestampKeys = []string{"timestamp", "time", "@timestamp", "ts"}

// levelKeys are tried in order when looking for a level field.
var levelKeys = []string{"level", "severity", "log_level"}

func parseJSON(rec models.LogRecord) (models.ParsedRecord, error) {
	var raw map[string]interface{}
	if err := json.Unmarshal([]byte(rec.RawLog), &raw); err != nil {
		return models.ParsedRecord{}, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}

	flat := make(map[string]interface{})
	flattenJSON("", raw, flat)

	out := models.ParsedRecord{
		Service: rec.Service,
		Source:  rec.Source,
		RawLog:  rec.RawLog,
		Fields:  make(map[string]models.FieldValue),
	}

	out.Timestamp = extractTimestamp(flat, timestampKeys)
	out.Level = strings.ToUpper(extractString(flat, levelKeys))

	for k, v := range flat {
		if isMeta(k, timestampKeys) || isMeta(k, levelKeys) {
			continue
		}
		out.Fields[k] = toFieldValue(v)
	}

	return out, nil
}

// flattenJSON walks a decoded JSON object, joining nested keys with "."
// and writing leaves (and arrays, taken as-is) into dst.
func flattenJSON(prefix string, src map[string]interface{}, dst map[string]interface{}) {
	for k, v := range src {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch child := v.(type) {
		case map[string]interface{}:
			flattenJSON(key, child, dst)
		default:
			dst[key] = v
		}
	}
}

func isMeta(key string, candidates []string) bool {
	for _, c := range candidates {
		if key == c {
			return true
		}
	}
	return false
}

func extractString(flat map[string]interface{}, keys []string) string {
	for _, k := range keys {
		if v, ok := flat[k]; ok {
			if s, ok := v.(string); ok {
				return s
			}
		}
	}
	return ""
}

func extractTimestamp(flat map[string]interface{}, keys []string) time.Time {
	for _, k := range keys {
		v, ok := flat[k]
		if !ok {
			continue
		}
		s, ok := v.(string)
		if !ok {
			continue
		}
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			return t
		}
		if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
			return t
		}
	}
	return time.Now().UTC()
}

// toFieldValue coerces a decoded JSON leaf into a FieldValue: numbers stay
// numeric, strings are coerced if they look numeric (with a unit
// suffix), everything else is stringified text.
func toFieldValue(v interface{}) models.FieldValue {
	switch t := v.(type) {
	case float64:
		return models.Numeric(t)
	case string:
		if n, ok := coerceNumeric(t); ok {
			return models.Numeric(n)
		}
		return models.TextValue(t)
	case bool:
		return models.TextValue(fmt.Sprintf("%t", t))
	default:
		return models.TextValue(fmt.Sprintf("%v", t))
	}
}
