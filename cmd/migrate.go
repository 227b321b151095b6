package main

import (
	"context"

	"restaurant-booking/internal/infra/db"
	"restaurant-booking/internal/pkg/config"
	"restaurant-booking/migrations"

	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withMigrator(cmd.Context(), func(m *db.Migrator) error {
				return m.Up(cmd.Context())
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Print the state of every migration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withMigrator(cmd.Context(), func(m *db.Migrator) error {
				return m.Status(cmd.Context())
			})
		},
	})

	return cmd
}

func withMigrator(ctx context.Context, fn func(m *db.Migrator) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	pool, cleanup, err := db.Connect(ctx, cfg.DB)
	if err != nil {
		return err
	}
	defer cleanup()

	m, err := db.NewMigrator(pool, migrations.FS)
	if err != nil {
		return err
	}
	defer m.Close()

	return fn(m)
}
