package core

import "errors"

// Backend failure taxonomy. Adapters wrap these sentinels so the Repository
// can classify failures with errors.Is; none of them ever crosses the
// Repository boundary to a caller.
var (
	// ErrUnavailable means the backend engine is not usable in this
	// environment (missing, disabled, unwritable). Degrades the backend to
	// a no-op for the current call.
	ErrUnavailable = errors.New("store unavailable")

	// ErrTransaction means a durable-backend operation failed mid-flight.
	ErrTransaction = errors.New("transaction failed")

	// ErrTimeout means a bounded wait on a backend expired. Treated exactly
	// like ErrTransaction: soft-failure for that backend only.
	ErrTimeout = errors.New("store timed out")

	// ErrWriteDenied means the fast backend rejected a write (quota,
	// read-only filesystem). The backend contributes nothing for this call.
	ErrWriteDenied = errors.New("write denied")
)
