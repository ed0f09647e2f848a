package main

import (
	"context"

	"github.com/spf13/cobra"
)

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear the note",
	Long: `Clear saves an empty note. The entry itself survives with a fresh
timestamp; clearing is an ordinary save, not a delete.`,
	Run: func(cmd *cobra.Command, args []string) {
		repo, err := openRepo(cmd)
		if err != nil {
			fatal("Failed to initialize inkwell", err)
		}
		defer repo.Close()

		if _, err := repo.SaveNote(context.Background(), ""); err != nil {
			fatal("Failed to clear note", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(clearCmd)
}
