// Package retry provides backoff delays for reconnecting to external
// services (Redis, NATS) on transient failures.
package retry

import "time"

// maxDelay bounds the backoff so a long-running reconnect loop does not
// sleep for minutes between attempts.
const maxDelay = 30 * time.Second

// ExponentialBackoff returns the delay before the given attempt, doubling
// from base (base * 2^attempt) and capped at 30s.
func ExponentialBackoff(attempt int, base time.Duration) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	delay := base * (1 << attempt)
	if delay > maxDelay || delay <= 0 {
		return maxDelay
	}
	return delay
}
