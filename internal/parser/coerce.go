package parser

import (
	"strconv"
	"strings"
)

// unitSuffixes are stripped (not scaled) before numeric parsing, per
// spec: "%" does not divide by 100, it is simply stripped like any other
// unit.
var unitSuffixes = []string{"ms", "kb", "mb", "%", "s"}

// coerceNumeric attempts to interpret s as a number, optionally followed
// by one of the known unit suffixes. It returns the numeric value and
// true on success, or (0, false) if s is not numeric-shaped.
func coerceNumeric(s string) (float64, bool) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return 0, false
	}

	if v, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return v, true
	}

	for _, suffix := range unitSuffixes {
		if strings.HasSuffix(trimmed, suffix) {
			numPart := strings.TrimSpace(strings.TrimSuffix(trimmed, suffix))
			if v, err := strconv.ParseFloat(numPart, 64); err == nil {
				return v, true
			}
		}
	}

	return 0, false
}
