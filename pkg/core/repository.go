package core

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/lifecycle"
)

// Default bounds for waits on the durable backend. Exceeding a bound
// resolves to a soft-failure outcome (no value for reads, best-effort
// accepted for writes) instead of suspending the caller.
const (
	DefaultReadTimeout  = 3 * time.Second
	DefaultWriteTimeout = 5 * time.Second
)

// RepositoryConfig holds the dependencies and tuning for a Repository.
type RepositoryConfig struct {
	Fast    Store
	Durable Store

	Logger   *slog.Logger
	Recorder Recorder

	// Clock overrides the timestamp source (tests). Defaults to time.Now.
	Clock func() time.Time

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Repository reconciles two independently-failing backends into one
// consistent "current note" value.
//
// Policy, fixed and deterministic:
//   - saves write the fast backend first (synchronously), then the durable
//     backend in a detached background task;
//   - reads consult the fast backend first and prefer its value when both
//     backends hold one. Because every save hits the fast backend first,
//     the fast value is at least as fresh in the steady state. There is no
//     timestamp-based merge between backends.
//
// Backends may transiently disagree (one write succeeded, the other timed
// out). That is expected, resolved at read time by the precedence rule, and
// never corrupts later reads.
//
// GetNote and SaveNote always resolve under normal operation: no error
// originating from a backend propagates past this type.
type Repository struct {
	fast    Store
	durable Store

	logger   *slog.Logger
	recorder Recorder
	now      func() time.Time

	readTimeout  time.Duration
	writeTimeout time.Duration

	mu        sync.RWMutex
	lastStamp int64
	pending   int
	closed    bool

	wg sync.WaitGroup
}

// NewRepository builds a Repository from the given configuration.
// Either backend may be nil; a nil backend simply never contributes.
func NewRepository(cfg RepositoryConfig) *Repository {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := cfg.Clock
	if now == nil {
		now = time.Now
	}
	readTimeout := cfg.ReadTimeout
	if readTimeout <= 0 {
		readTimeout = DefaultReadTimeout
	}
	writeTimeout := cfg.WriteTimeout
	if writeTimeout <= 0 {
		writeTimeout = DefaultWriteTimeout
	}

	return &Repository{
		fast:         cfg.Fast,
		durable:      cfg.Durable,
		logger:       logger,
		recorder:     cfg.Recorder,
		now:          now,
		readTimeout:  readTimeout,
		writeTimeout: writeTimeout,
	}
}

// GetNote returns the current note, or (nil, nil) when no backend holds one.
// An empty environment is the correct initial state, not an error.
func (r *Repository) GetNote(ctx context.Context) (*Entry, error) {
	// Fast backend first: it is synchronous and typically the more
	// available of the two in restrictive environments.
	if e := r.readFrom(ctx, r.fast); e != nil {
		return e, nil
	}
	if e := r.readFrom(ctx, r.durable); e != nil {
		return e, nil
	}
	return nil, nil
}

// readFrom queries one backend within the read bound. Every failure mode
// (unavailable, transaction error, timeout) degrades to "no value".
func (r *Repository) readFrom(ctx context.Context, s Store) *Entry {
	if s == nil {
		return nil
	}

	start := r.now()
	var entry *Entry
	err := r.callBounded(ctx, r.readTimeout, func(opCtx context.Context) error {
		if !s.Available(opCtx) {
			return ErrUnavailable
		}
		e, err := s.Get(opCtx, EntryID)
		if err != nil {
			return err
		}
		entry = e
		return nil
	})
	r.record(s, "get", start, err)
	if err != nil {
		r.logger.Warn("read failed, skipping backend", "backend", s.Name(), "error", err)
		return nil
	}
	return entry
}

// SaveNote stamps the content once and upserts it into both backends.
// The fast write happens on the caller's path; the durable write is a
// detached, bounded background task whose outcome is observed only through
// the logger and the op recorder. The returned Entry is the value that was
// written, not a re-read, so the caller always gets an authoritative echo
// even when every backend is down.
func (r *Repository) SaveNote(ctx context.Context, content string) (Entry, error) {
	entry := Entry{
		ID:        EntryID,
		Content:   content,
		UpdatedAt: r.stamp(),
	}

	r.writeFast(ctx, entry)
	r.spawnDurableWrite(entry)

	return entry, nil
}

// stamp assigns the save timestamp. Clamped to the previous stamp so the
// sequence stays non-decreasing even if the wall clock steps backwards.
func (r *Repository) stamp() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	ts := r.now().UnixMilli()
	if ts < r.lastStamp {
		ts = r.lastStamp
	}
	r.lastStamp = ts
	return ts
}

func (r *Repository) writeFast(ctx context.Context, e Entry) {
	if r.fast == nil {
		return
	}

	start := r.now()
	var err error
	if !r.fast.Available(ctx) {
		err = ErrUnavailable
	} else {
		err = r.fast.Put(ctx, e)
	}
	r.record(r.fast, "put", start, err)
	if err != nil {
		r.logger.Warn("fast write failed, continuing", "backend", r.fast.Name(), "error", err)
	}
}

// spawnDurableWrite issues the secondary write without blocking the caller.
// The task runs on a detached context: a save must not lose its durable
// copy just because the caller's context ended right after SaveNote
// returned. Cancellation is implicit, by abandoning the attempt when the
// write bound expires.
func (r *Repository) spawnDurableWrite(e Entry) {
	if r.durable == nil {
		return
	}

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.pending++
	r.mu.Unlock()
	r.wg.Add(1)

	lifecycle.Go(context.Background(), func(ctx context.Context) error {
		defer r.wg.Done()
		defer func() {
			r.mu.Lock()
			r.pending--
			r.mu.Unlock()
		}()

		start := r.now()
		err := r.callBounded(ctx, r.writeTimeout, func(opCtx context.Context) error {
			if !r.durable.Available(opCtx) {
				return ErrUnavailable
			}
			return r.durable.Put(opCtx, e)
		})
		r.record(r.durable, "put", start, err)
		if err != nil {
			r.logger.Warn("durable write failed, absorbed", "backend", r.durable.Name(), "error", err)
		}
		return nil
	}, lifecycle.WithErrorHandler(func(err error) {
		r.logger.Error("durable write panic", "backend", r.durable.Name(), "error", err)
	}))
}

// DurableHealth reports whether the durable backend is reachable and
// functioning. Diagnostics only; never on the save/load path.
func (r *Repository) DurableHealth(ctx context.Context) error {
	if r.durable == nil {
		return fmt.Errorf("%w: no durable backend configured", ErrUnavailable)
	}

	return r.callBounded(ctx, r.readTimeout, func(opCtx context.Context) error {
		if hc, ok := r.durable.(HealthChecker); ok {
			return hc.Health(opCtx)
		}
		if !r.durable.Available(opCtx) {
			return ErrUnavailable
		}
		_, err := r.durable.Get(opCtx, EntryID)
		return err
	})
}

// Close stops accepting new saves and drains in-flight durable writes.
// Each write is individually bounded, so Close returns within roughly one
// write timeout.
func (r *Repository) Close() error {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()

	r.wg.Wait()
	return nil
}

// callBounded runs fn against its own deadline and abandons it once the
// deadline expires, so a backend that never completes cannot suspend the
// caller. The abandoned attempt keeps running until it notices its context
// was cancelled.
func (r *Repository) callBounded(ctx context.Context, bound time.Duration, fn func(context.Context) error) error {
	opCtx, cancel := context.WithTimeout(ctx, bound)
	defer cancel()

	errc := make(chan error, 1)
	lifecycle.Go(opCtx, func(c context.Context) error {
		errc <- fn(c)
		return nil
	}, lifecycle.WithErrorHandler(func(err error) {
		select {
		case errc <- err:
		default:
		}
	}))

	select {
	case err := <-errc:
		return err
	case <-opCtx.Done():
		return fmt.Errorf("%w: %v", ErrTimeout, opCtx.Err())
	}
}

func (r *Repository) record(s Store, op string, start time.Time, err error) {
	if r.recorder == nil {
		return
	}

	rec := OpRecord{
		Backend: s.Name(),
		Op:      op,
		OK:      err == nil,
		Elapsed: r.now().Sub(start).Milliseconds(),
	}
	if err != nil {
		rec.Err = err.Error()
	}
	r.recorder.Record(rec)
}
