package platform

import (
	"log/slog"
	"time"

	"github.com/spf13/afero"

	"github.com/aretw0/inkwell/pkg/core"
)

// options holds the internal configuration for the inkwell repository.
type options struct {
	logger     *slog.Logger
	fast       core.Store
	durable    core.Store
	durableSet bool
	fsys       afero.Fs
	clock      func() time.Time

	readTimeout  time.Duration
	writeTimeout time.Duration

	journal bool
}

// Option defines a functional option for configuring inkwell.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		fsys:    afero.NewOsFs(),
		journal: true,
	}
}

// WithLogger sets the logger for the repository.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithFastStore injects a custom fast backend (e.g. a mock or an
// alternative key-value engine). If provided, the default file-pair
// adapter is skipped.
func WithFastStore(s core.Store) Option {
	return func(o *options) {
		o.fast = s
	}
}

// WithDurableStore injects a custom durable backend. If provided, the
// default SQLite adapter is skipped. Passing nil explicitly disables the
// durable path entirely.
func WithDurableStore(s core.Store) Option {
	return func(o *options) {
		o.durable = s
		o.durableSet = true
	}
}

// WithFilesystem overrides the filesystem used by the default fast
// backend. Tests use this to inject in-memory or read-only filesystems.
func WithFilesystem(fsys afero.Fs) Option {
	return func(o *options) {
		o.fsys = fsys
	}
}

// WithClock overrides the timestamp source (useful for tests).
func WithClock(clock func() time.Time) Option {
	return func(o *options) {
		o.clock = clock
	}
}

// WithReadTimeout bounds waits on durable-backend reads.
func WithReadTimeout(d time.Duration) Option {
	return func(o *options) {
		o.readTimeout = d
	}
}

// WithWriteTimeout bounds the background durable write per save.
func WithWriteTimeout(d time.Duration) Option {
	return func(o *options) {
		o.writeTimeout = d
	}
}

// WithJournal enables or disables the diagnostics journal. Enabled by
// default; disabling it only silences diagnostics, never behavior.
func WithJournal(enabled bool) Option {
	return func(o *options) {
		o.journal = enabled
	}
}
