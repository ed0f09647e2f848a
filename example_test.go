package inkwell_test

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/aretw0/inkwell"
)

// Example_basic demonstrates how to open a repository, save the note, and
// read it back.
func Example_basic() {
	// Create a temporary directory for the example
	tmpDir, err := os.MkdirTemp("", "inkwell-example-*")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	// Open the repository targeting the temporary directory.
	repo, err := inkwell.New(tmpDir, inkwell.WithJournal(false))
	if err != nil {
		log.Fatal(err)
	}
	defer repo.Close()

	ctx := context.Background()

	// 1. Save the note
	if _, err := repo.SaveNote(ctx, "This is my note."); err != nil {
		log.Fatal(err)
	}

	// 2. Read it back
	note, err := repo.GetNote(ctx)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Found note: %s\n", note.Content)
	// Output: Found note: This is my note.
}
