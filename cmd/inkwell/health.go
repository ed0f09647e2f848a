package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/inkwell"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the durable backend",
	Long: `Health probes the durable backend and reports whether it is usable.
Exits non-zero when the backend is unreachable, so scripts and service
monitors can react.`,
	Run: func(cmd *cobra.Command, args []string) {
		repo, err := openRepo(cmd)
		if err != nil {
			fatal("Failed to initialize inkwell", err)
		}
		defer repo.Close()

		if !inkwell.CheckDurableStoreHealth(context.Background(), repo) {
			fmt.Fprintln(os.Stderr, "durable backend: unhealthy")
			os.Exit(1)
		}
		fmt.Println("durable backend: ok")
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
}
