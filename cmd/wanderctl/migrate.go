package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"wanderplan/internal/config"
	"wanderplan/internal/infra"
)

var (
	migrateDSN string
	migrateDir string
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the SQL migrations to Postgres",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		dsn := migrateDSN
		if dsn == "" {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			dsn = cfg.DB.DSN
		}
		dir := migrateDir
		if dir == "" {
			found, err := infra.FindMigrationsDir()
			if err != nil {
				return err
			}
			dir = found
		}

		db, err := infra.NewDB(cmd.Context(), dsn)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := infra.ApplyMigrations(cmd.Context(), db, dir); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "migrations applied from %s\n", dir)
		return nil
	},
}

func init() {
	migrateCmd.Flags().StringVar(&migrateDSN, "dsn", "", "Postgres DSN (defaults to WANDER_DB_DSN)")
	migrateCmd.Flags().StringVar(&migrateDir, "dir", "", "migrations directory (defaults to ./migrations at the module root)")
	rootCmd.AddCommand(migrateCmd)
}
