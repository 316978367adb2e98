package parser

import "errors"

// ErrMissingConfig is returned when a regex-format record has no
// CustomConfig.Pattern configured.
var ErrMissingConfig = errors.New("parser: regex format requires custom_config.pattern")

// ErrMalformedInput is returned when the declared format could not parse
// raw_log at all (invalid JSON, unmatched regex, etc). Callers recover by
// falling back to a degenerate ParsedRecord rather than aborting the
// batch; see Parse.
var ErrMalformedInput = errors.New("parser: malformed input for declared format")
