package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"otpshare/internal/repository/postgres"
	"otpshare/internal/service"
)

func newExportCmd() *cobra.Command {
	var format, out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every code in the pool to a CSV or XLSX file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, db, err := openDB()
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			backups := service.NewBackupService(postgres.NewOTPRepo(db), nil, cfg.S3, cfg.Backup)
			snap, err := backups.Export(cmd.Context(), format)
			if err != nil {
				return err
			}

			if out == "" {
				out = snap.FileName
			}
			if err := os.WriteFile(out, snap.Data, 0o600); err != nil {
				return fmt.Errorf("writing %s: %w", out, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d codes to %s\n", snap.Count, out)
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "", "csv or xlsx (defaults to the configured backup format)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output path (defaults to a timestamped file name)")
	return cmd
}
