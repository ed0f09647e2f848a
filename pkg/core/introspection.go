package core

import (
	"time"

	"github.com/aretw0/introspection"
)

// RepositoryState exposes internal state for observability.
type RepositoryState struct {
	FastBackend          string        `json:"fast_backend"`
	DurableBackend       string        `json:"durable_backend"`
	ReadTimeout          time.Duration `json:"read_timeout"`
	WriteTimeout         time.Duration `json:"write_timeout"`
	PendingDurableWrites int           `json:"pending_durable_writes"`
	LastSavedAt          int64         `json:"last_saved_at,omitempty"`
	Closed               bool          `json:"closed"`
}

// State implements introspection.Introspectable.
func (r *Repository) State() any {
	r.mu.RLock()
	defer r.mu.RUnlock()

	state := RepositoryState{
		FastBackend:          "none",
		DurableBackend:       "none",
		ReadTimeout:          r.readTimeout,
		WriteTimeout:         r.writeTimeout,
		PendingDurableWrites: r.pending,
		LastSavedAt:          r.lastStamp,
		Closed:               r.closed,
	}
	if r.fast != nil {
		state.FastBackend = r.fast.Name()
	}
	if r.durable != nil {
		state.DurableBackend = r.durable.Name()
	}
	return state
}

// ComponentType implements introspection.Component.
func (r *Repository) ComponentType() string {
	return "repository"
}

var _ introspection.Introspectable = (*Repository)(nil)
var _ introspection.Component = (*Repository)(nil)
