package main

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var writeContent string

var writeCmd = &cobra.Command{
	Use:   "write [file]",
	Short: "Save the note",
	Long: `Write saves new content for the note. Content comes from --content,
from a file argument, or from stdin when neither is given. The save always
succeeds once at least the in-process state accepts it; backend trouble is
logged and journaled, never surfaced.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		content, err := resolveContent(cmd, args)
		if err != nil {
			fatal("Failed to read content", err)
		}

		repo, err := openRepo(cmd)
		if err != nil {
			fatal("Failed to initialize inkwell", err)
		}
		defer repo.Close()

		if _, err := repo.SaveNote(context.Background(), content); err != nil {
			fatal("Failed to save note", err)
		}
	},
}

// resolveContent picks the content source: flag, file argument, then stdin.
func resolveContent(cmd *cobra.Command, args []string) (string, error) {
	if cmd.Flags().Changed("content") {
		return writeContent, nil
	}
	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func init() {
	rootCmd.AddCommand(writeCmd)
	writeCmd.Flags().StringVar(&writeContent, "content", "", "Note content (reads stdin if omitted)")
}
