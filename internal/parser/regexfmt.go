package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/dkowalski/logsentinel/pkg/models"
)

// parseRegex applies rec.CustomConfig.Pattern to rec.RawLog and maps
// capture groups onto fields per CustomConfig.FieldMapping. Group "0"
// maps to the timestamp by convention; any mapped group named "level" is
// upper-cased and stored as the level instead of a generic field.
func parseRegex(rec models.LogRecord) (models.ParsedRecord, error) {
	if rec.CustomConfig == nil || rec.CustomConfig.Pattern == "" {
		return models.ParsedRecord{}, ErrMissingConfig
	}

	re, err := regexp.Compile(rec.CustomConfig.Pattern)
	if err != nil {
		return models.ParsedRecord{}, fmt.Errorf("%w: invalid pattern: %v", ErrMalformedInput, err)
	}

	matches := re.FindStringSubmatch(rec.RawLog)
	if matches == nil {
		return models.ParsedRecord{}, fmt.Errorf("%w: pattern did not match raw_log", ErrMalformedInput)
	}

	out := models.ParsedRecord{
		Service: rec.Service,
		Source:  rec.Source,
		RawLog:  rec.RawLog,
		Fields:  make(map[string]models.FieldValue),
	}

	haveTimestamp := false
	for groupIdx, fieldName := range rec.CustomConfig.FieldMapping {
		idx, err := strconv.Atoi(groupIdx)
		if err != nil || idx < 0 || idx >= len(matches) {
			continue
		}
		val := matches[idx]

		switch {
		case idx == 0 || strings.EqualFold(fieldName, "timestamp"):
			if t, err := time.Parse(time.RFC3339, val); err == nil {
				out.Timestamp = t
				haveTimestamp = true
			}
		case strings.EqualFold(fieldName, "level"):
			out.Level = strings.ToUpper(val)
		default:
			if n, ok := coerceNumeric(val); ok {
				out.Fields[fieldName] = models.Numeric(n)
			} else {
				out.Fields[fieldName] = models.TextValue(val)
			}
		}
	}

	if !haveTimestamp {
		out.Timestamp = time.Now().UTC()
	}

	return out, nil
}
