package alerting

import (
	"errors"
	"net"
	"strconv"
	"strings"
	"time"
)

// Backoff parameters: 3 attempts total, base 500ms, factor 2 (waits of
// 500ms and then 1s between the attempts).
const (
	maxAttempts   = 3
	baseBackoff   = 500 * time.Millisecond
	backoffFactor = 2
)

// dispatchTimeout bounds the total time spent retrying a single alert
// delivery, across all attempts.
const dispatchTimeout = 10 * time.Second

// httpStatusError wraps a non-2xx response so isRetryable can classify
// it without the sink needing to know about retry policy.
type httpStatusError struct {
	StatusCode int
}

func (e *httpStatusError) Error() string {
	return "webhook returned status " + strconv.Itoa(e.StatusCode)
}

// isRetryable reports whether err represents a transient failure worth
// retrying: network timeouts/resets, and HTTP 5xx or 429. Anything else
// -- in particular 4xx other than 429 -- is permanent and is logged and
// dropped without retry.
func isRetryable(err error) bool {
	if err == nil {
		return false
	}

	var statusErr *httpStatusError
	if errors.As(err, &statusErr) {
		if statusErr.StatusCode == 429 {
			return true
		}
		return statusErr.StatusCode >= 500
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, marker := range []string{"timeout", "connection refused", "connection reset", "no such host", "network unreachable", "eof"} {
		if strings.Contains(msg, marker) {
			return true
		}
	}

	return false
}

// backoffDelay returns the delay before retry attempt n (1-indexed:
// delay before the 2nd attempt is baseBackoff, before the 3rd is
// baseBackoff*backoffFactor).
func backoffDelay(attempt int) time.Duration {
	delay := baseBackoff
	for i := 1; i < attempt; i++ {
		delay *= backoffFactor
	}
	return delay
}
