package main

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"otpshare/internal/config"
	"otpshare/internal/repository/postgres"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "otpctl",
		Short:         "Operator tools for the OTP share service",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(
		newParseCmd(),
		newVendorsCmd(),
		newCreateAdminCmd(),
		newMigrateCmd(),
		newExportCmd(),
	)
	return root
}

// openDB loads configuration and connects to the database.
func openDB() (*config.Config, *sqlx.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return nil, nil, fmt.Errorf("connecting to database: %w", err)
	}
	return cfg, db, nil
}
