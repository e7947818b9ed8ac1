package ai

import (
	"errors"
	"math/rand"
	"time"
)

// Retry policy for the batch enhancement pass, where many generation
// calls run back to back and rate limits are expected. Interactive
// single-shot calls do not retry: a failure surfaces to the user and
// leaves the tree unchanged.

const MaxRetries = 3

// IsRetryable checks if an error is worth retrying.
func IsRetryable(err error) bool {
	var retryErr *RetryableError
	return errors.As(err, &retryErr)
}

// Backoff returns a duration for attempt n (0-indexed) with jitter.
func Backoff(attempt int) time.Duration {
	base := time.Duration(1<<uint(attempt)) * time.Second
	if base > 30*time.Second {
		base = 30 * time.Second
	}
	jitter := time.Duration(rand.Int63n(int64(base) / 2))
	return base + jitter
}
