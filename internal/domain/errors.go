package domain

import (
	"errors"
	"fmt"
)

// Failure categories surfaced to callers. Each request either succeeds fully
// or fails with exactly one of these; partial results are never returned.
var (
	// ErrInvalidQuery marks validation failures. Rejected before any
	// upstream call.
	ErrInvalidQuery = errors.New("invalid query")

	// ErrRateLimited marks an upstream 429. Retryable by the caller.
	ErrRateLimited = errors.New("upstream rate limit exceeded, please retry in a moment")

	// ErrUpstreamTimeout marks an outbound request that exceeded the client
	// timeout, distinct from other upstream failures.
	ErrUpstreamTimeout = errors.New("upstream request timed out")
)

// UpstreamError reports a non-success upstream response or transport failure.
// Message carries a truncated diagnostic, never a full response body.
type UpstreamError struct {
	Status  int // 0 for transport-level failures
	Message string
}

func (e *UpstreamError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("upstream error: status %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("upstream error: %s", e.Message)
}
