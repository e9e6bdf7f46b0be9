package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"otpshare/internal/domain"
	"otpshare/internal/parser"
)

func newParseCmd() *cobra.Command {
	var (
		vendor string
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "parse --vendor <type> <file>",
		Short: "Decode a vendor export and print the codes it contains",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := domain.ParseVendorType(vendor)
			if err != nil {
				return err
			}
			p, err := parser.NewParser(v)
			if err != nil {
				return err
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}
			codes, err := p.Parse(data)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(map[string]interface{}{
					"vendor_type": v,
					"count":       len(codes),
					"codes":       codes,
				})
			}
			for _, c := range codes {
				fmt.Fprintln(out, c)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&vendor, "vendor", "", "vendor type ("+vendorList()+")")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print a JSON document instead of one code per line")
	_ = cmd.MarkFlagRequired("vendor")
	return cmd
}

func newVendorsCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "vendors",
		Short: "List supported import formats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			meta := parser.Metadata()
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(meta)
			}
			for _, m := range meta {
				fmt.Fprintf(out, "%s\t%s\t%s\n", m.VendorType, m.Name, strings.Join(m.FileExtensions, ","))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full metadata as JSON")
	return cmd
}

func vendorList() string {
	vendors := domain.VendorTypes()
	names := make([]string, len(vendors))
	for i, v := range vendors {
		names[i] = string(v)
	}
	return strings.Join(names, ", ")
}
