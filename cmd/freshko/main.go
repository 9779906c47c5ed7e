package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "freshko",
	Short: "Freshko — grocery storefront state and storage CLI",
	Long: "Freshko manages the storefront's persistence layer: the schema'd " +
		"key-value engine, the flat fallback store, the one-time data " +
		"migration between them, and the seeded catalogue.",
}

func init() {
	// Storage
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(migrateStatusCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(statsCmd)

	// Server
	rootCmd.AddCommand(serveCmd)
}
