package todo

import "errors"

// Sentinel errors for the operation surface. Document-store errors
// (not found, invalid target) originate in the vault package and pass
// through wrapped; these cover the query and mutation paths.
var (
	// ErrUpstreamUnavailable means no query engine is wired in.
	ErrUpstreamUnavailable = errors.New("task query engine unavailable")
	// ErrQueryFailed wraps an error the query engine reported.
	ErrQueryFailed = errors.New("task query failed")
	// ErrUnexpectedShape means the engine returned a non-task result.
	ErrUnexpectedShape = errors.New("unexpected query result shape")
	// ErrSectionMissing means the configured section heading is not
	// present as its own line in the target document.
	ErrSectionMissing = errors.New("section heading not found")
	// ErrTaskNotFound means the exact old status+text line is not
	// present; it commonly indicates a concurrent edit since the
	// caller last read the document.
	ErrTaskNotFound = errors.New("task not found (it may have changed since it was last read)")
)
