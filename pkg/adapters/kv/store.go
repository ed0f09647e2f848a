// Package kv implements the fast, synchronous, best-effort backend.
//
// The note lives as two independent files under fixed, well-known keys: one
// holding the raw content, one holding the stringified save timestamp. The
// engine makes no transactional promises across the pair; each file is
// individually replaced with an atomic temp-file + rename. It keeps working
// in environments where the transactional engine is disabled or unwritable.
package kv

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/afero"

	"github.com/aretw0/inkwell/pkg/core"
)

// Well-known keys inside the state directory.
const (
	contentKey = "content"
	stampKey   = "updated_at"
	probeKey   = ".probe"
)

// Store implements core.Store over a plain filesystem.
type Store struct {
	// Dir is the state directory holding the content and timestamp files.
	Dir string

	fsys afero.Fs
}

// New creates a file-pair store rooted at dir on the OS filesystem.
func New(dir string) *Store {
	return NewWithFs(afero.NewOsFs(), dir)
}

// NewWithFs creates a store on an arbitrary filesystem. Tests use this to
// inject read-only or in-memory filesystems and exercise quota/denied paths.
func NewWithFs(fsys afero.Fs, dir string) *Store {
	return &Store{Dir: dir, fsys: fsys}
}

// Name implements core.Store.
func (s *Store) Name() string { return "kv" }

// Available attempts a throwaway write+delete. Any failure means the
// backend is unusable right now. The result is never cached: restrictions
// can appear or disappear between calls.
func (s *Store) Available(_ context.Context) bool {
	if err := s.fsys.MkdirAll(s.Dir, 0755); err != nil {
		return false
	}

	probe := filepath.Join(s.Dir, probeKey)
	if err := afero.WriteFile(s.fsys, probe, []byte("ok"), 0644); err != nil {
		return false
	}
	if err := s.fsys.Remove(probe); err != nil {
		return false
	}
	return true
}

// Get reads the content and timestamp files. A missing content file means
// no note exists. A missing or unparseable timestamp degrades to 0 instead
// of failing the whole read.
func (s *Store) Get(_ context.Context, id string) (*core.Entry, error) {
	path := filepath.Join(s.Dir, contentKey)
	if exists, _ := afero.Exists(s.fsys, path); !exists {
		return nil, nil
	}

	data, err := afero.ReadFile(s.fsys, path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: read %s: %v", core.ErrUnavailable, contentKey, err)
	}

	var stamp int64
	if raw, err := afero.ReadFile(s.fsys, filepath.Join(s.Dir, stampKey)); err == nil {
		if n, perr := strconv.ParseInt(strings.TrimSpace(string(raw)), 10, 64); perr == nil {
			stamp = n
		}
	}

	return &core.Entry{
		ID:        id,
		Content:   string(data),
		UpdatedAt: stamp,
	}, nil
}

// Put replaces both files. The write is best-effort: callers treat any
// returned error as "this backend contributed nothing for this call".
func (s *Store) Put(_ context.Context, e core.Entry) error {
	if err := s.fsys.MkdirAll(s.Dir, 0755); err != nil {
		return fmt.Errorf("%w: %v", core.ErrWriteDenied, err)
	}

	// Content first, then the stamp. A crash between the two leaves a note
	// with a stale timestamp, which readers already tolerate.
	if err := writeFileAtomic(s.fsys, filepath.Join(s.Dir, contentKey), []byte(e.Content), 0644); err != nil {
		return fmt.Errorf("%w: %v", core.ErrWriteDenied, err)
	}
	stamp := strconv.FormatInt(e.UpdatedAt, 10)
	if err := writeFileAtomic(s.fsys, filepath.Join(s.Dir, stampKey), []byte(stamp), 0644); err != nil {
		return fmt.Errorf("%w: %v", core.ErrWriteDenied, err)
	}
	return nil
}

var _ core.Store = (*Store)(nil)
