package kv_test

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/inkwell/pkg/adapters/kv"
	"github.com/aretw0/inkwell/pkg/core"
)

func TestPutGet(t *testing.T) {
	t.Run("Round Trip", func(t *testing.T) {
		store := kv.NewWithFs(afero.NewMemMapFs(), "/state")
		ctx := context.Background()

		entry := core.Entry{ID: core.EntryID, Content: "<b>bold</b>", UpdatedAt: 1234}
		require.NoError(t, store.Put(ctx, entry))

		got, err := store.Get(ctx, core.EntryID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, entry.Content, got.Content)
		assert.Equal(t, entry.UpdatedAt, got.UpdatedAt)
	})

	t.Run("Missing Content Means No Note", func(t *testing.T) {
		store := kv.NewWithFs(afero.NewMemMapFs(), "/state")

		got, err := store.Get(context.Background(), core.EntryID)
		require.NoError(t, err, "Get on empty store must not error")
		assert.Nil(t, got)
	})

	t.Run("Unparseable Stamp Defaults To Zero", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		store := kv.NewWithFs(fsys, "/state")
		ctx := context.Background()

		require.NoError(t, store.Put(ctx, core.Entry{ID: core.EntryID, Content: "x", UpdatedAt: 99}))
		require.NoError(t, afero.WriteFile(fsys, filepath.Join("/state", "updated_at"), []byte("not-a-number"), 0644))

		got, err := store.Get(ctx, core.EntryID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, int64(0), got.UpdatedAt, "stamp must degrade to 0")
		assert.Equal(t, "x", got.Content, "content must survive a corrupt stamp")
	})

	t.Run("Full Replace On Every Put", func(t *testing.T) {
		store := kv.NewWithFs(afero.NewMemMapFs(), "/state")
		ctx := context.Background()

		require.NoError(t, store.Put(ctx, core.Entry{ID: core.EntryID, Content: "a long first version", UpdatedAt: 1}))
		require.NoError(t, store.Put(ctx, core.Entry{ID: core.EntryID, Content: "short", UpdatedAt: 2}))

		got, err := store.Get(ctx, core.EntryID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "short", got.Content)
		assert.Equal(t, int64(2), got.UpdatedAt)
	})
}

func TestAvailable(t *testing.T) {
	t.Run("Writable Filesystem", func(t *testing.T) {
		store := kv.NewWithFs(afero.NewMemMapFs(), "/state")
		assert.True(t, store.Available(context.Background()))
	})

	t.Run("Read Only Filesystem", func(t *testing.T) {
		store := kv.NewWithFs(afero.NewReadOnlyFs(afero.NewMemMapFs()), "/state")
		assert.False(t, store.Available(context.Background()))
	})

	t.Run("Probe Leaves No Residue", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		store := kv.NewWithFs(fsys, "/state")
		store.Available(context.Background())

		files, err := afero.ReadDir(fsys, "/state")
		require.NoError(t, err)
		assert.Empty(t, files, "probe must clean up after itself")
	})
}

func TestPutDenied(t *testing.T) {
	store := kv.NewWithFs(afero.NewReadOnlyFs(afero.NewMemMapFs()), "/state")

	err := store.Put(context.Background(), core.Entry{ID: core.EntryID, Content: "nope"})
	assert.ErrorIs(t, err, core.ErrWriteDenied)
}

func TestNoTempFilesLeftBehind(t *testing.T) {
	fsys := afero.NewMemMapFs()
	store := kv.NewWithFs(fsys, "/state")
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, store.Put(ctx, core.Entry{ID: core.EntryID, Content: "v", UpdatedAt: int64(i)}))
	}

	files, err := afero.ReadDir(fsys, "/state")
	require.NoError(t, err)
	for _, f := range files {
		assert.False(t, strings.HasPrefix(f.Name(), kv.TempFilePrefix), "leftover temp file: %s", f.Name())
	}
	assert.Len(t, files, 2, "expected exactly the content and stamp files")
}
