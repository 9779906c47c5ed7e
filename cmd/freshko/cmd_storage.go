package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/freshko/database/seeders"
	"github.com/shashiranjanraj/freshko/pkg/bus"
	"github.com/shashiranjanraj/freshko/pkg/migrate"
)

// freshko migrate
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Copy legacy flat-store data into the key-value engine",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		facade, engine, fallback, err := boot(ctx)
		if err != nil {
			return err
		}
		if facade.Degraded() {
			return fmt.Errorf("migration needs the engine tier, which is unavailable")
		}

		c := migrate.New(engine, fallback, bus.New())
		if !c.NeedsMigration(ctx) {
			fmt.Println("Already migrated, nothing to do.")
			return nil
		}

		fmt.Println("Migrating flat-store data…")
		report, err := c.Run(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("  copied=%d skipped=%d failed=%d\n",
			report.Copied, report.Skipped, report.Failed)
		return nil
	},
}

// freshko migrate:status
var migrateStatusCmd = &cobra.Command{
	Use:   "migrate:status",
	Short: "Show whether the one-time flat-store migration has run",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		_, engine, fallback, err := boot(ctx)
		if err != nil {
			return err
		}

		c := migrate.New(engine, fallback, nil)
		if c.NeedsMigration(ctx) {
			fmt.Println("Migration pending.")
		} else {
			fmt.Println("Migration complete.")
		}
		return nil
	},
}

// freshko seed
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Install the original catalogue, articles and demo accounts",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		facade, _, _, err := boot(ctx)
		if err != nil {
			return err
		}

		fmt.Println("Running seeders…")
		return seeders.RunAll(ctx, facade)
	},
}

// freshko stats
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print storage tier status and engine usage",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		facade, _, _, err := boot(ctx)
		if err != nil {
			return err
		}

		if facade.Degraded() {
			fmt.Println("tier:    flat (engine unavailable)")
			return nil
		}

		usage := facade.Usage(ctx)
		fmt.Println("tier:    engine")
		fmt.Printf("used:    %d bytes\n", usage.Used)
		if usage.Quota > 0 {
			fmt.Printf("quota:   %d bytes\n", usage.Quota)
		}
		return nil
	},
}
