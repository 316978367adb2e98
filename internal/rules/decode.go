package rules

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/dkowalski/logsentinel/pkg/models"
)

// DecodeThresholdRuleSet parses a JSON object of the shape
// {"service": {"field": threshold, ...}, ...} into a ThresholdRuleSet,
// recording each service's field order as it appears in the source
// document. Go's map type has no iteration order of its own, so a plain
// json.Unmarshal into map[string]map[string]float64 would lose the
// "first violation in insertion order wins" rule semantics; this walks
// the token stream directly to capture that order before building the
// map.
func DecodeThresholdRuleSet(raw []byte) (*models.ThresholdRuleSet, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))

	result := &models.ThresholdRuleSet{
		Rules:      make(map[string]map[string]float64),
		FieldOrder: make(map[string][]string),
	}

	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}

	for dec.More() {
		serviceTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("rules: decoding service key: %w", err)
		}
		service, ok := serviceTok.(string)
		if !ok {
			return nil, fmt.Errorf("rules: expected service name, got %v", serviceTok)
		}

		if err := expectDelim(dec, '{'); err != nil {
			return nil, err
		}

		fields := make(map[string]float64)
		var order []string

		for dec.More() {
			fieldTok, err := dec.Token()
			if err != nil {
				return nil, fmt.Errorf("rules: decoding field key for service %q: %w", service, err)
			}
			field, ok := fieldTok.(string)
			if !ok {
				return nil, fmt.Errorf("rules: expected field name, got %v", fieldTok)
			}

			valTok, err := dec.Token()
			if err != nil {
				return nil, fmt.Errorf("rules: decoding threshold for %s.%s: %w", service, field, err)
			}
			threshold, ok := valTok.(float64)
			if !ok {
				return nil, fmt.Errorf("rules: threshold for %s.%s must be numeric, got %v", service, field, valTok)
			}

			fields[field] = threshold
			order = append(order, field)
		}

		if err := expectDelim(dec, '}'); err != nil {
			return nil, err
		}

		result.Rules[service] = fields
		result.FieldOrder[service] = order
	}

	return result, expectDelim(dec, '}')
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("rules: %w", err)
	}
	delim, ok := tok.(json.Delim)
	if !ok || delim != want {
		return fmt.Errorf("rules: expected %q, got %v", want, tok)
	}
	return nil
}
