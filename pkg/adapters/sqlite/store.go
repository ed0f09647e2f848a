// Package sqlite implements the durable, transactional backend on an
// embedded SQLite database via the Bun query builder and the pure Go
// modernc.org/sqlite driver.
//
// Each logical operation opens its own connection, runs exactly one
// transaction, and releases the connection again. Correctness never depends
// on a long-lived handle, so a blocked or half-upgraded database held by
// another consumer can only slow a single call down until its context
// deadline fires; it can never wedge the process.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/aretw0/inkwell/pkg/core"
)

// entryModel maps the single logical table used by Bun.
type entryModel struct {
	bun.BaseModel `bun:"table:entries"`

	ID        string `bun:"id,pk"`
	Content   string `bun:"content"`
	UpdatedAt int64  `bun:"updated_at"`
}

// Store implements core.Store and core.HealthChecker.
type Store struct {
	// Path is the database file location. The parent directory is created
	// lazily on first use.
	Path string
}

// New creates a durable store writing to the given database file.
func New(path string) *Store {
	return &Store{Path: path}
}

// Name implements core.Store.
func (s *Store) Name() string { return "sqlite" }

// open establishes a fresh connection and ensures the schema exists.
// All failure modes come back as wrapped sentinels, never panics, so the
// probe stays safe in hostile environments.
func (s *Store) open(ctx context.Context) (*bun.DB, error) {
	if dir := filepath.Dir(s.Path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("%w: %v", core.ErrUnavailable, err)
		}
	}

	sqlDB, err := sql.Open("sqlite", s.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrUnavailable, err)
	}
	// One connection per logical operation. The engine is embedded; pooling
	// here would only mask cross-saver locking behind shared handles.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	db := bun.NewDB(sqlDB, sqlitedialect.New())

	if _, err := db.NewCreateTable().Model((*entryModel)(nil)).IfNotExists().Exec(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: ensure schema: %v", core.ErrUnavailable, err)
	}

	return db, nil
}

// Available probes the engine: open, ping, release. Called
// before every read/write; the verdict is never cached.
func (s *Store) Available(ctx context.Context) bool {
	db, err := s.open(ctx)
	if err != nil {
		return false
	}
	defer db.Close()

	return db.PingContext(ctx) == nil
}

// Get retrieves the entry in a single transaction. Absence is (nil, nil).
func (s *Store) Get(ctx context.Context, id string) (*core.Entry, error) {
	db, err := s.open(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	var m entryModel
	err = db.NewSelect().Model(&m).Where("id = ?", id).Limit(1).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: select: %v", core.ErrTransaction, err)
	}

	return &core.Entry{
		ID:        m.ID,
		Content:   m.Content,
		UpdatedAt: m.UpdatedAt,
	}, nil
}

// Put upserts the entry, keyed by its fixed ID, in one transaction.
func (s *Store) Put(ctx context.Context, e core.Entry) error {
	db, err := s.open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	m := entryModel{
		ID:        e.ID,
		Content:   e.Content,
		UpdatedAt: e.UpdatedAt,
	}

	err = db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewInsert().Model(&m).
			On("CONFLICT (id) DO UPDATE").
			Set("content = EXCLUDED.content").
			Set("updated_at = EXCLUDED.updated_at").
			Exec(ctx)
		return err
	})
	if err != nil {
		return fmt.Errorf("%w: upsert: %v", core.ErrTransaction, err)
	}
	return nil
}

// Health implements core.HealthChecker: verifies the engine answers a real
// query, not just a ping.
func (s *Store) Health(ctx context.Context) error {
	db, err := s.open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := db.NewSelect().Model((*entryModel)(nil)).Count(ctx); err != nil {
		return fmt.Errorf("%w: count: %v", core.ErrTransaction, err)
	}
	return nil
}

var _ core.Store = (*Store)(nil)
var _ core.HealthChecker = (*Store)(nil)
