package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/spf13/cobra"

	"otpshare/internal/config"
)

func newMigrateCmd() *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:       "migrate [up|down|steps N|version]",
		Short:     "Apply or inspect database schema migrations",
		Args:      cobra.RangeArgs(1, 2),
		ValidArgs: []string{"up", "down", "steps", "version"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			m, err := migrate.New("file://"+dir, cfg.DB.DSN())
			if err != nil {
				return fmt.Errorf("creating migrate instance: %w", err)
			}
			defer func() { _, _ = m.Close() }()

			out := cmd.OutOrStdout()
			switch args[0] {
			case "up":
				if err := ignoreNoChange(m.Up()); err != nil {
					return fmt.Errorf("migration up failed: %w", err)
				}
				fmt.Fprintln(out, "migrations applied successfully")

			case "down":
				if err := ignoreNoChange(m.Down()); err != nil {
					return fmt.Errorf("migration down failed: %w", err)
				}
				fmt.Fprintln(out, "migrations reverted successfully")

			case "steps":
				if len(args) < 2 {
					return errors.New("steps requires a number argument")
				}
				n, err := strconv.Atoi(args[1])
				if err != nil {
					return fmt.Errorf("invalid steps argument: %w", err)
				}
				if err := ignoreNoChange(m.Steps(n)); err != nil {
					return fmt.Errorf("migration steps failed: %w", err)
				}
				fmt.Fprintf(out, "applied %d migration steps\n", n)

			case "version":
				version, dirty, err := m.Version()
				if err != nil {
					return fmt.Errorf("reading version: %w", err)
				}
				fmt.Fprintf(out, "version: %d, dirty: %v\n", version, dirty)

			default:
				return fmt.Errorf("unknown migrate command: %s", args[0])
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "db/migrations", "migrations directory")
	return cmd
}

func ignoreNoChange(err error) error {
	if errors.Is(err, migrate.ErrNoChange) {
		return nil
	}
	return err
}
