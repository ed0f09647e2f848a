package main

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/inkwell/internal/markup"
)

var importCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Import a note from a markdown document",
	Long: `Import restores the note from a document produced by export, or from
stdin. Documents without frontmatter are accepted as bare content. The
import is an ordinary save: the note gets a fresh timestamp.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var data []byte
		var err error
		if len(args) == 1 {
			data, err = os.ReadFile(args[0])
		} else {
			data, err = io.ReadAll(os.Stdin)
		}
		if err != nil {
			fatal("Failed to read document", err)
		}

		entry, err := markup.Parse(data)
		if err != nil {
			fatal("Failed to parse document", err)
		}

		repo, err := openRepo(cmd)
		if err != nil {
			fatal("Failed to initialize inkwell", err)
		}
		defer repo.Close()

		if _, err := repo.SaveNote(context.Background(), entry.Content); err != nil {
			fatal("Failed to save note", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}
