package catalog

import (
	"fmt"

	"github.com/mhofwell/agent-augments/internal/source"
)

// ErrorKind classifies a sync failure for structured reporting.
type ErrorKind string

const (
	// ErrKindRateLimited: upstream quota exhausted.
	ErrKindRateLimited ErrorKind = "rate_limited"
	// ErrKindNotFound: manifest confirmed absent upstream.
	ErrKindNotFound ErrorKind = "not_found"
	// ErrKindUpstream: any other upstream or network failure.
	ErrKindUpstream ErrorKind = "upstream"
	// ErrKindValidation: fetched document structurally unusable.
	ErrKindValidation ErrorKind = "validation"
	// ErrKindPersistence: store write failed.
	ErrKindPersistence ErrorKind = "persistence"
)

// SyncError carries both the failure kind and its message so callers
// get structured information instead of a flattened string.
type SyncError struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

func (e *SyncError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// newSyncError wraps a raw error with its kind.
func newSyncError(kind ErrorKind, err error) *SyncError {
	return &SyncError{Kind: kind, Message: err.Error()}
}

// classifySourceError maps a source-layer error onto an ErrorKind.
func classifySourceError(err error) ErrorKind {
	switch {
	case source.IsRateLimited(err):
		return ErrKindRateLimited
	case source.IsNotFound(err):
		return ErrKindNotFound
	default:
		return ErrKindUpstream
	}
}
