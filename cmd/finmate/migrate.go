package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Veraticus/finmate/internal/cli"
	"github.com/Veraticus/finmate/internal/storage"
)

func (a *app) migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Prepare the profile store",
		Long: `Initialize or update the profile store. For SQLite this applies schema
migrations; for MongoDB it creates the user_id index.`,
		RunE: a.runMigrate,
	}
}

func (a *app) runMigrate(cmd *cobra.Command, _ []string) error {
	slog.Info("Preparing profile store",
		"driver", a.cfg.Storage.Driver,
		"path", a.cfg.Storage.Path)

	store, err := a.openStore(cmd.Context())
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	defer func() { _ = store.Close() }()

	msg := "Profile store ready"
	if a.cfg.Storage.Driver == storage.DriverSQLite {
		msg = fmt.Sprintf("Database at schema version %d", storage.ExpectedSchemaVersion)
	}
	fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(msg))
	return nil
}
