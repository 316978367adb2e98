// Package parser turns a raw LogRecord into a structured ParsedRecord
// according to its declared FormatType, coercing field values to numeric
// where possible so downstream feature extraction and rule evaluation
// can work uniformly over them.
package parser

import (
	"time"

	"github.com/dkowalski/logsentinel/pkg/models"
	"github.com/sirupsen/logrus"
)

// Parse dispatches rec to the strategy named by rec.FormatType. If the
// strategy fails (malformed JSON, unmatched regex, missing custom
// config), Parse does not abort the caller's batch: it logs the failure
// and returns a degenerate ParsedRecord carrying only the record's
// identity fields, an empty field set, and the current time as
// timestamp, so the record can still flow through the rest of the
// pipeline as a "no fields, therefore no rule violation" pass-through.
func Parse(rec models.LogRecord, log *logrus.Logger) models.ParsedRecord {
	var (
		parsed models.ParsedRecord
		err    error
	)

	switch rec.FormatType {
	case models.FormatJSON:
		parsed, err = parseJSON(rec)
	case models.FormatKeyValue:
		parsed, err = parseKeyValue(rec)
	case models.FormatRegex:
		parsed, err = parseRegex(rec)
	default:
		parsed, err = parseKeyValue(rec)
	}

	if err != nil {
		if log != nil {
			log.WithFields(logrus.Fields{
				"service":     rec.Service,
				"source":      rec.Source,
				"format_type": rec.FormatType,
			}).WithError(err).Warn("parser: falling back to degenerate record")
		}
		return degenerate(rec)
	}

	return parsed
}

func degenerate(rec models.LogRecord) models.ParsedRecord {
	return models.ParsedRecord{
		Service:   rec.Service,
		Source:    rec.Source,
		RawLog:    rec.RawLog,
		Timestamp: time.Now().UTC(),
		Fields:    map[string]models.FieldValue{},
	}
}
