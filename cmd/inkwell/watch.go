package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/aretw0/inkwell/pkg/autosave"
)

var (
	watchPattern string
	watchQuiet   time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch <draft-file>",
	Short: "Autosave a draft file",
	Long: `Watch mirrors a draft file into the note store. Every burst of edits
is coalesced into a single save after a quiet period, the way an editor
autosaves on debounce. Runs until interrupted.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		draft, err := filepath.Abs(args[0])
		if err != nil {
			fatal("Failed to resolve draft path", err)
		}

		repo, err := openRepo(cmd)
		if err != nil {
			fatal("Failed to initialize inkwell", err)
		}
		defer repo.Close()

		watcher := autosave.New(autosave.Config{
			Repo:    repo,
			Path:    draft,
			Pattern: watchPattern,
			Quiet:   watchQuiet,
			Logger:  slog.Default(),
		})

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := watcher.Start(ctx); err != nil {
			fatal("Failed to start watcher", err)
		}
		slog.Info("watching draft", "path", draft, "quiet", watchQuiet)

		<-ctx.Done()
		stop()

		slog.Info("shutting down")
		stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := watcher.Stop(stopCtx); err != nil {
			slog.Warn("watcher did not stop cleanly", "error", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringVar(&watchPattern, "pattern", "", "Glob matched against changed file names (defaults to the draft name)")
	watchCmd.Flags().DurationVar(&watchQuiet, "quiet", autosave.DefaultQuiet, "Quiet period before a coalesced save")
}
