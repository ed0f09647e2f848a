package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	readJSON bool
)

var readCmd = &cobra.Command{
	Use:   "read",
	Short: "Read the note",
	Long: `Read prints the current note content. With --json the full entry
(id, content, updatedAt) is printed instead. An absent note prints nothing
and exits successfully: an empty editor is a valid initial state.`,
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
			return
		}

		if readJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(note); err != nil {
				fatal("Failed to encode JSON", err)
			}
			return
		}

		fmt.Print(note.Content)
	},
}

func init() {
	rootCmd.AddCommand(readCmd)
	readCmd.Flags().BoolVar(&readJSON, "json", false, "Output in JSON format")
}
