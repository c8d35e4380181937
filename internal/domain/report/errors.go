package report

import "errors"

var (
	// ErrNotReady indicates the report has not finished generating.
	// Expected and non-fatal: poll again later.
	ErrNotReady = errors.New("report not ready")
	// ErrFetchFailed indicates a transport failure on the remote fetch.
	// Retryable from the caller's point of view.
	ErrFetchFailed = errors.New("report fetch failed")
)
