package core

import "context"

// Store defines the contract for a single note persistence backend.
// The Repository composes two instances of this capability (a fast,
// synchronous best-effort store and a durable, transactional store)
// instead of hardcoding two bespoke code paths.
//
// Adapters report failures as explicit errors wrapping the sentinels in
// errors.go; the Repository is the absorption boundary that turns them
// into soft-failures.
type Store interface {
	// Name identifies the backend in logs and journal entries.
	Name() string

	// Available probes whether the backend can currently be used.
	// It is called before every read/write attempt and must never be
	// cached as process-wide state: host restrictions can change between
	// calls. Probing must not panic, whatever the environment looks like.
	Available(ctx context.Context) bool

	// Get retrieves the entry by ID. Absence is (nil, nil), not an error.
	Get(ctx context.Context, id string) (*Entry, error)

	// Put upserts the full entry. Each write is a complete replacement of
	// everything the backend stores; there are no partial updates.
	Put(ctx context.Context, e Entry) error
}

// HealthChecker is implemented by stores that can report engine health
// beyond the cheap availability probe. Used only for diagnostics, never on
// the read/write path.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// OpRecord describes the outcome of one backend operation. Records exist
// purely for diagnostics; in particular they are the only place where the
// result of a fire-and-forget durable write can be observed.
type OpRecord struct {
	Backend string
	Op      string
	OK      bool
	Err     string
	Elapsed int64 // milliseconds
}

// Recorder receives operation outcomes. Implementations must be safe for
// concurrent use and must never fail loudly: recording is best-effort.
type Recorder interface {
	Record(rec OpRecord)
}
