// Package journal persists backend operation outcomes as an append-only
// JSON-lines file. It is the only place where the result of a
// fire-and-forget durable write can be observed after the fact.
package journal

import (
	"bufio"
	"encoding/json"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/aretw0/inkwell/pkg/core"
)

// Entry is one journal line.
type Entry struct {
	ID        string `json:"id"`
	TS        string `json:"ts"`
	Backend   string `json:"backend"`
	Op        string `json:"op"`
	OK        bool   `json:"ok"`
	Error     string `json:"error,omitempty"`
	ElapsedMs int64  `json:"elapsed_ms"`
}

// Writer appends journal entries to a single file. Safe for concurrent use.
type Writer struct {
	path   string
	logger *slog.Logger
	mu     sync.Mutex
}

// NewWriter creates a journal writer. The file is created on first append.
func NewWriter(path string, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{path: path, logger: logger}
}

// Record implements core.Recorder. Journal failures are swallowed after a
// debug log: diagnostics must never interfere with the save path.
func (w *Writer) Record(rec core.OpRecord) {
	e := Entry{
		ID:        ulid.Make().String(),
		TS:        time.Now().UTC().Format(time.RFC3339Nano),
		Backend:   rec.Backend,
		Op:        rec.Op,
		OK:        rec.OK,
		Error:     rec.Err,
		ElapsedMs: rec.Elapsed,
	}
	if err := w.append(e); err != nil {
		w.logger.Debug("journal append failed", "error", err)
	}
}

func (w *Writer) append(e Entry) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	f, err := os.OpenFile(w.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	bw := bufio.NewWriter(f)

	b, err := json.Marshal(e)
	if err != nil {
		return err
	}
	if _, err := bw.Write(append(b, '\n')); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return err
	}

	return f.Sync()
}

var _ core.Recorder = (*Writer)(nil)
