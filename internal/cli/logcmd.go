// Copyright (c) 2026 PathoGUI Team
// Pathograde - pathology slide grading tool
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/pathogui/pathograde/internal/gradelog"
	"github.com/pathogui/pathograde/internal/i18n"
	"github.com/spf13/cobra"
)

func newLogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Inspect and export grading logs",
	}

	show := &cobra.Command{
		Use:   "show <username>",
		Short: "Print a reviewer's grading log",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			recs, err := gradelog.NewWriter(nil, appConfig.Results.Dir).ReadAll(args[0])
			if err != nil {
				return err
			}
			if len(recs) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), i18n.T("cli.no_records", args[0]))
				return nil
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "TIME\tIMAGE\tPRIMARY\tSECONDARY\tX\tY\tCOMMENT")
			for _, r := range recs {
				row := r.Row()
				_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n", row[0], row[2], row[3], row[4], row[5], row[6], row[7])
			}
			return w.Flush()
		},
	}

	export := &cobra.Command{
		Use:   "export <username>",
		Short: "Export a reviewer's grading log as zstd-compressed CSV or XLSX",
		Args:  cobra.ExactArgs(1),
		RunE:  runLogExport,
	}
	export.Flags().StringP("format", "f", "zst", "Export format: zst or xlsx")
	export.Flags().StringP("output", "o", "", `Output file ("-" for stdout; default derived from the log name)`)

	cmd.AddCommand(show, export)
	return cmd
}

func runLogExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	output, _ := cmd.Flags().GetString("output")

	var export func(io.Writer, []gradelog.Record) error
	var ext string
	switch format {
	case "zst", "zstd":
		export, ext = gradelog.ExportZstd, ".csv.zst"
	case "xlsx":
		export, ext = gradelog.ExportXLSX, ".xlsx"
	default:
		return errors.New(i18n.T("cli.unknown_format", format))
	}

	recs, err := gradelog.NewWriter(nil, appConfig.Results.Dir).ReadAll(args[0])
	if err != nil {
		return err
	}

	if output == "-" {
		return export(cmd.OutOrStdout(), recs)
	}
	if output == "" {
		output = gradelog.FilePrefix + args[0] + ext
	}
	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("create %s: %w", output, err)
	}
	if err := export(f, recs); err != nil {
		_ = f.Close()
		return fmt.Errorf("export %s: %w", output, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), i18n.T("cli.export_written", len(recs), output))
	return nil
}
