package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/inkwell/internal/markup"
)

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export the note as a markdown document",
	Long: `Export renders the note as a portable markdown document with YAML
frontmatter (id, updated_at) and prints it, or writes it to the given file.
Use import to restore from such a document.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		repo, err := openRepo(cmd)
		if err != nil {
			fatal("Failed to initialize inkwell", err)
		}
		defer repo.Close()

		note, err := repo.GetNote(context.Background())
		if err != nil {
			fatal("Failed to read note", err)
		}
		if note == nil {
			fatal("Nothing to export", fmt.Errorf("no note saved yet"))
		}

		data, err := markup.Marshal(*note)
		if err != nil {
			fatal("Failed to render note", err)
		}

		if len(args) == 1 {
			if err := os.WriteFile(args[0], data, 0644); err != nil {
				fatal("Failed to write export", err)
			}
			return
		}
		os.Stdout.Write(data)
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
}
