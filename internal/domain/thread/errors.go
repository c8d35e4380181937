package thread

import "errors"

var (
	// ErrMismatch indicates the persisted state belongs to a different thread.
	// Not retryable: the caller must restart the flow from submission.
	ErrMismatch = errors.New("persisted state belongs to a different thread")
)
