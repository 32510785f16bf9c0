package source

import (
	"errors"
	"fmt"
	"time"
)

// RateLimitedError indicates the upstream quota is exhausted. Callers
// must not retry before Reset.
type RateLimitedError struct {
	Reset time.Time
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("github rate limit exceeded, resets at %s", e.Reset.Format(time.RFC3339))
}

// NotFoundError indicates the requested document does not exist
// upstream. For manifests this triggers marketplace deactivation
// rather than a retry.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

// UpstreamError is any other non-2xx or network failure. The HTTP
// status and message are preserved.
type UpstreamError struct {
	Status  int
	Message string
}

func (e *UpstreamError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("github api error (status %d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("github api error: %s", e.Message)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsRateLimited reports whether err is a RateLimitedError.
func IsRateLimited(err error) bool {
	var rl *RateLimitedError
	return errors.As(err, &rl)
}
