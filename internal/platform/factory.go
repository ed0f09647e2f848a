package platform

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/aretw0/inkwell/internal/journal"
	"github.com/aretw0/inkwell/pkg/adapters/kv"
	"github.com/aretw0/inkwell/pkg/adapters/sqlite"
	"github.com/aretw0/inkwell/pkg/core"
)

// Layout of the data directory.
const (
	fastDir     = "fast"
	durableFile = "durable/note.db"
	journalFile = "journal.ndjson"
)

// New wires the default adapters into a Repository rooted at dir.
//
//	repo, err := platform.New("~/.local/share/inkwell")
//
// Both backends are optional at runtime: the repository degrades per call
// to whichever one probes available.
func New(dir string, opts ...Option) (*core.Repository, error) {
	if dir == "" {
		return nil, fmt.Errorf("data directory must not be empty")
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data directory: %w", err)
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	logger := o.logger
	if logger == nil {
		logger = slog.Default()
	}

	fast := o.fast
	if fast == nil {
		fast = kv.NewWithFs(o.fsys, filepath.Join(abs, fastDir))
	}

	durable := o.durable
	if durable == nil && !o.durableSet {
		durable = sqlite.New(filepath.Join(abs, durableFile))
	}

	var recorder core.Recorder
	if o.journal {
		recorder = journal.NewWriter(filepath.Join(abs, journalFile), logger)
	}

	return core.NewRepository(core.RepositoryConfig{
		Fast:         fast,
		Durable:      durable,
		Logger:       logger,
		Recorder:     recorder,
		Clock:        o.clock,
		ReadTimeout:  o.readTimeout,
		WriteTimeout: o.writeTimeout,
	}), nil
}
