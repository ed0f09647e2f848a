package inkwell

import (
	"context"
	"log/slog"
	"time"

	"github.com/spf13/afero"

	"github.com/aretw0/inkwell/internal/platform"
	"github.com/aretw0/inkwell/pkg/core"
)

// --- Types ---

// Entry is a public alias for the persisted note record.
type Entry = core.Entry

// Store is a public alias for the backend contract.
type Store = core.Store

// --- Configuration ---

// Option defines a functional option for configuring inkwell.
type Option = platform.Option

// WithLogger sets the logger for the repository.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithFastStore injects a custom fast backend.
func WithFastStore(s core.Store) Option {
	return platform.WithFastStore(s)
}

// WithDurableStore injects a custom durable backend; nil disables it.
func WithDurableStore(s core.Store) Option {
	return platform.WithDurableStore(s)
}

// WithFilesystem overrides the filesystem used by the default fast backend.
func WithFilesystem(fsys afero.Fs) Option {
	return platform.WithFilesystem(fsys)
}

// WithClock overrides the timestamp source (useful for testing).
func WithClock(clock func() time.Time) Option {
	return platform.WithClock(clock)
}

// WithReadTimeout bounds waits on durable-backend reads.
func WithReadTimeout(d time.Duration) Option {
	return platform.WithReadTimeout(d)
}

// WithWriteTimeout bounds the background durable write per save.
func WithWriteTimeout(d time.Duration) Option {
	return platform.WithWriteTimeout(d)
}

// WithJournal enables or disables the diagnostics journal.
func WithJournal(enabled bool) Option {
	return platform.WithJournal(enabled)
}

// --- Factory ---

// New creates a note Repository rooted at the given data directory.
func New(dir string, opts ...Option) (*core.Repository, error) {
	return platform.New(dir, opts...)
}

// --- Diagnostics ---

// CheckDurableStoreHealth reports whether the durable backend of the given
// repository is reachable and functioning. Diagnostics only; the save/load
// path never depends on it.
func CheckDurableStoreHealth(ctx context.Context, repo *core.Repository) bool {
	return repo.DurableHealth(ctx) == nil
}
