package parser

import (
	"strings"
	"time"

	"github.com/dkowalski/logsentinel/pkg/models"
)

// knownLevels is used to recognize a bare uppercase token (not part of a
// key=value pair) as the log level, e.g. "2023-01-01T00:00:00Z ERROR
// request failed response_time=2500ms".
var knownLevels = map[string]bool{
	"DEBUG": true, "INFO": true, "WARN": true, "WARNING": true,
	"ERROR": true, "FATAL": true, "CRITICAL": true, "TRACE": true,
}

func parseKeyValue(rec models.LogRecord) (models.ParsedRecord, error) {
	out := models.ParsedRecord{
		Service: rec.Service,
		Source:  rec.Source,
		RawLog:  rec.RawLog,
		Fields:  make(map[string]models.FieldValue),
	}

	tokens := strings.Fields(rec.RawLog)
	haveTimestamp := false

	for _, tok := range tokens {
		if eq := strings.IndexByte(tok, '='); eq > 0 {
			key := tok[:eq]
			val := strings.Trim(tok[eq+1:], `"`)
			if n, ok := coerceNumeric(val); ok {
				out.Fields[key] = models.Numeric(n)
			} else {
				out.Fields[key] = models.TextValue(val)
			}
			continue
		}

		if !haveTimestamp {
			if t, err := time.Parse(time.RFC3339, tok); err == nil {
				out.Timestamp = t
				haveTimestamp = true
				continue
			}
			if t, err := time.Parse(time.RFC3339Nano, tok); err == nil {
				out.Timestamp = t
				haveTimestamp = true
				continue
			}
		}

		if out.Level == "" && knownLevels[tok] {
			out.Level = tok
		}
	}

	if !haveTimestamp {
		out.Timestamp = time.Now().UTC()
	}

	return out, nil
}
