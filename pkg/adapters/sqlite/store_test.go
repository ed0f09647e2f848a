package sqlite_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/inkwell/pkg/adapters/sqlite"
	"github.com/aretw0/inkwell/pkg/core"
)

func newStore(t *testing.T) *sqlite.Store {
	t.Helper()
	return sqlite.New(filepath.Join(t.TempDir(), "note.db"))
}

func TestPutGet(t *testing.T) {
	t.Run("Round Trip", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		entry := core.Entry{ID: core.EntryID, Content: "<p>hi</p>", UpdatedAt: 42}
		require.NoError(t, store.Put(ctx, entry))

		got, err := store.Get(ctx, core.EntryID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, entry.Content, got.Content)
		assert.Equal(t, entry.UpdatedAt, got.UpdatedAt)
	})

	t.Run("Empty Database Yields Nil", func(t *testing.T) {
		store := newStore(t)

		got, err := store.Get(context.Background(), core.EntryID)
		require.NoError(t, err, "Get on empty database must not error")
		assert.Nil(t, got)
	})

	t.Run("Put Is An Upsert", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		require.NoError(t, store.Put(ctx, core.Entry{ID: core.EntryID, Content: "first", UpdatedAt: 1}))
		require.NoError(t, store.Put(ctx, core.Entry{ID: core.EntryID, Content: "second", UpdatedAt: 2}))

		got, err := store.Get(ctx, core.EntryID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "second", got.Content)
		assert.Equal(t, int64(2), got.UpdatedAt)
	})
}

func TestAvailable(t *testing.T) {
	t.Run("Writable Path", func(t *testing.T) {
		store := newStore(t)
		assert.True(t, store.Available(context.Background()))
	})

	t.Run("Blocked Path", func(t *testing.T) {
		// Use a regular file as a path component so the engine cannot
		// create its database underneath it.
		dir := t.TempDir()
		blocker := filepath.Join(dir, "blocker")
		require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

		store := sqlite.New(filepath.Join(blocker, "sub", "note.db"))
		assert.False(t, store.Available(context.Background()))
	})
}

func TestGetUnavailable(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	store := sqlite.New(filepath.Join(blocker, "sub", "note.db"))
	_, err := store.Get(context.Background(), core.EntryID)
	assert.ErrorIs(t, err, core.ErrUnavailable)
}

func TestHealth(t *testing.T) {
	store := newStore(t)
	assert.NoError(t, store.Health(context.Background()))
}

func TestSchemaSurvivesReopen(t *testing.T) {
	// Every operation opens its own connection; the schema created by the
	// first must be visible to a second store pointed at the same file.
	path := filepath.Join(t.TempDir(), "note.db")
	ctx := context.Background()

	first := sqlite.New(path)
	require.NoError(t, first.Put(ctx, core.Entry{ID: core.EntryID, Content: "persisted", UpdatedAt: 7}))

	second := sqlite.New(path)
	got, err := second.Get(ctx, core.EntryID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "persisted", got.Content)
}
