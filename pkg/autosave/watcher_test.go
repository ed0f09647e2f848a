package autosave_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
	"go.uber.org/goleak"

	"github.com/aretw0/inkwell/pkg/adapters/kv"
	"github.com/aretw0/inkwell/pkg/autosave"
	"github.com/aretw0/inkwell/pkg/core"
)

func TestWatcherSavesDraft(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	draft := filepath.Join(dir, "draft.md")
	if err := os.WriteFile(draft, []byte("initial"), 0644); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	repo := core.NewRepository(core.RepositoryConfig{
		Fast: kv.NewWithFs(afero.NewMemMapFs(), "/state"),
	})
	defer repo.Close()

	w := autosave.New(autosave.Config{
		Repo:  repo,
		Path:  draft,
		Quiet: 20 * time.Millisecond,
		ErrorHandler: func(err error) {
			t.Logf("watcher error: %v", err)
		},
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	if err := os.WriteFile(draft, []byte("typed content"), 0644); err != nil {
		t.Fatalf("failed to update draft: %v", err)
	}

	waitForContent(t, repo, "typed content")

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer stopCancel()
	if err := w.Stop(stopCtx); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
}

func TestWatcherIgnoresUnmatchedFiles(t *testing.T) {
	dir := t.TempDir()
	draft := filepath.Join(dir, "draft.md")
	if err := os.WriteFile(draft, []byte("draft"), 0644); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	repo := core.NewRepository(core.RepositoryConfig{
		Fast: kv.NewWithFs(afero.NewMemMapFs(), "/state"),
	})
	defer repo.Close()

	w := autosave.New(autosave.Config{
		Repo:  repo,
		Path:  draft,
		Quiet: 20 * time.Millisecond,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	// A sibling file must not trigger a save.
	if err := os.WriteFile(filepath.Join(dir, "other.txt"), []byte("noise"), 0644); err != nil {
		t.Fatalf("failed to write sibling: %v", err)
	}

	time.Sleep(100 * time.Millisecond)
	got, err := repo.GetNote(ctx)
	if err != nil {
		t.Fatalf("GetNote failed: %v", err)
	}
	if got != nil {
		t.Errorf("expected no save for unmatched files, got %+v", got)
	}

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer stopCancel()
	if err := w.Stop(stopCtx); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
}

func waitForContent(t *testing.T, repo *core.Repository, want string) {
	t.Helper()

	deadline := time.After(3 * time.Second)
	for {
		got, err := repo.GetNote(context.Background())
		if err != nil {
			t.Fatalf("GetNote failed: %v", err)
		}
		if got != nil && got.Content == want {
			return
		}
		select {
		case <-deadline:
			t.Fatalf("timeout waiting for autosave, last=%+v", got)
		case <-time.After(10 * time.Millisecond):
		}
	}
}
