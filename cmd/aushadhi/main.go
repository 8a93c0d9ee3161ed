// Command aushadhi is the operational CLI for the pharmacy API: it serves
// HTTP, runs migrations and seeders, works the queue, and drives the
// scheduler.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Register migrations, seeders and queued jobs via their init funcs.
	_ "github.com/shashiranjanraj/aushadhi/app/jobs"
	_ "github.com/shashiranjanraj/aushadhi/database/migrations"
	_ "github.com/shashiranjanraj/aushadhi/database/seeders"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "aushadhi",
	Short: "Aushadhi Pharmacy API",
	Long:  "Aushadhi is an online pharmacy storefront API. Use this CLI to serve HTTP, manage the database, and run background workers.",
}

func init() {
	// Server
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(routeListCmd)

	// Database
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(migrateRollbackCmd)
	rootCmd.AddCommand(migrateStatusCmd)
	rootCmd.AddCommand(seedCmd)

	// Workers
	rootCmd.AddCommand(queueWorkCmd)
	rootCmd.AddCommand(scheduleRunCmd)
}
