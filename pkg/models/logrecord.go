package models

import "time"

// FormatType names the three parser strategies a LogRecord can declare.
type FormatType string

// Supported format types.
const (
	FormatJSON     FormatType = "json"
	FormatKeyValue FormatType = "key_value"
	FormatRegex    FormatType = "regex"
)

// CustomConfig carries the regex-format parsing configuration.
type CustomConfig struct {
	Pattern      string            `json:"pattern"`
	FieldMapping map[string]string `json:"field_mapping"`
}

// LogRecord is the raw input to the parser. Immutable within a request.
type LogRecord struct {
	RawLog       string        `json:"raw_log"`
	Service      string        `json:"service"`
	Source       string        `json:"source"`
	FormatType   FormatType    `json:"format_type"`
	CustomConfig *CustomConfig `json:"custom_config,omitempty"`
}

// ParsedRecord is the structured result of parsing a LogRecord.
type ParsedRecord struct {
	Service   string
	Source    string
	Timestamp time.Time
	Level     string
	RawLog    string
	Fields    map[string]FieldValue
}

// NumericField returns the numeric value of a field, or (0, false) if the
// field is absent or holds a text value.
func (p *ParsedRecord) NumericField(name string) (float64, bool) {
	v, ok := p.Fields[name]
	if !ok || !v.IsNumeric() {
		return 0, false
	}
	return v.Num, true
}
