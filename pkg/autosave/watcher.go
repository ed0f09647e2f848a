// Package autosave mirrors a draft file into the note repository.
//
// A Watcher observes the draft's directory, coalesces the burst of events a
// live editor produces into one trigger per quiet period, and upserts the
// full draft content as an independent save. It is the file-backed analog
// of an editor calling saveNote on debounce/blur.
package autosave

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/aretw0/lifecycle/pkg/core/worker"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/inkwell/pkg/core"
)

// DefaultQuiet is the debounce window between the last draft change and the
// coalesced save.
const DefaultQuiet = 500 * time.Millisecond

// Config holds the watcher wiring.
type Config struct {
	// Repo receives the coalesced saves.
	Repo *core.Repository

	// Path is the draft file to mirror.
	Path string

	// Pattern optionally widens the match beyond the exact draft name;
	// matched against base names with doublestar syntax. Defaults to the
	// draft's base name.
	Pattern string

	// Quiet overrides the debounce window.
	Quiet time.Duration

	Logger *slog.Logger

	// ErrorHandler receives runtime failures (unreadable draft, watcher
	// errors). Failures never terminate the loop.
	ErrorHandler func(error)
}

// Watcher is the autosave worker.
type Watcher struct {
	*worker.BaseWorker

	repo     *core.Repository
	path     string
	pattern  string
	quiet    time.Duration
	logger   *slog.Logger
	onError  func(error)
	watcher  *fsnotify.Watcher
	debounce *debouncer
	cancel   context.CancelFunc
}

// New creates a Watcher from the given config.
func New(cfg Config) *Watcher {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	quiet := cfg.Quiet
	if quiet <= 0 {
		quiet = DefaultQuiet
	}
	pattern := cfg.Pattern
	if pattern == "" {
		pattern = filepath.Base(cfg.Path)
	}

	return &Watcher{
		BaseWorker: worker.NewBaseWorker("autosave-watcher"),
		repo:       cfg.Repo,
		path:       cfg.Path,
		pattern:    pattern,
		quiet:      quiet,
		logger:     logger,
		onError:    cfg.ErrorHandler,
	}
}

// Start begins watching the draft's directory.
func (w *Watcher) Start(ctx context.Context) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	status := w.State().Status
	if status != worker.StatusCreated && status != worker.StatusPending {
		return fmt.Errorf("watcher already started (status: %s)", status)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}

	// Watch the directory, not the file: editors replace drafts via
	// rename, which drops a plain file watch.
	if err := watcher.Add(filepath.Dir(w.path)); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("failed to watch draft directory: %w", err)
	}

	w.watcher = watcher
	w.debounce = newDebouncer(w.quiet)

	runCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	w.SetStatus(worker.StatusRunning)
	return w.StartFunc(runCtx, w.run)
}

// Stop terminates the event loop and waits for in-flight saves.
func (w *Watcher) Stop(ctx context.Context) error {
	if w.cancel != nil {
		w.StopRequested = true
		w.cancel()
	}
	return w.BaseWorker.Stop(ctx)
}

// State implements worker.Worker.
func (w *Watcher) State() worker.State {
	return w.ExportState(func(s *worker.State) {
		s.Metadata = map[string]string{
			worker.MetadataType: string(worker.TypeGoroutine),
		}
	})
}

func (w *Watcher) run(ctx context.Context) error {
	defer w.watcher.Close()

	err := w.eventLoop(ctx)

	// Let a trailing coalesced save finish before tearing down.
	w.debounce.stopAndWait(5 * time.Second)
	return err
}

func (w *Watcher) eventLoop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				if w.StopRequested || ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher events channel closed")
			}
			w.handleEvent(ctx, event)

		case werr, ok := <-w.watcher.Errors:
			if !ok {
				if w.StopRequested || ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher errors channel closed")
			}
			w.reportError(werr)
		}
	}
}

func (w *Watcher) handleEvent(ctx context.Context, event fsnotify.Event) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return
	}

	matched, err := doublestar.Match(w.pattern, filepath.Base(event.Name))
	if err != nil || !matched {
		return
	}

	w.logger.Debug("draft changed", "name", event.Name)
	w.debounce.add(func() {
		w.saveDraft(ctx)
	})
}

// saveDraft reads the full draft and upserts it. Reads that race an editor
// rename are retried on the next event; the repository itself never fails a
// save.
func (w *Watcher) saveDraft(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	data, err := os.ReadFile(w.path)
	if err != nil {
		w.reportError(fmt.Errorf("failed to read draft %s: %w", w.path, err))
		return
	}

	entry, err := w.repo.SaveNote(ctx, string(data))
	if err != nil {
		w.reportError(fmt.Errorf("failed to save draft: %w", err))
		return
	}
	w.logger.Debug("draft saved", "updated_at", entry.UpdatedAt, "bytes", len(entry.Content))
}

func (w *Watcher) reportError(err error) {
	if w.onError != nil {
		w.onError(err)
		return
	}
	w.logger.Error("autosave error", "error", err)
}
