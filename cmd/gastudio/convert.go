package main

import (
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/nerrad567/knx-ga-studio/internal/infrastructure/logging"
	"github.com/nerrad567/knx-ga-studio/internal/studio"
)

func newConvertCmd(opts *options) *cobra.Command {
	var xmlIn, xmlOut, xlsxOut string

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert an export offline",
		Long:  "Read an ETS group address export, write the renamed export and the Excel mapping sheet.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			log := logging.New(cfg.Logging, version)

			conv, err := cfg.Convention.Build()
			if err != nil {
				return fmt.Errorf("building convention: %w", err)
			}

			svc, err := studio.New(studio.Deps{Convention: conv, Logger: log})
			if err != nil {
				return err
			}

			report, err := svc.ConvertFiles(cmd.Context(), xmlIn, xmlOut, xlsxOut)
			if err != nil {
				return err
			}
			return printReport(cmd.OutOrStdout(), report)
		},
	}

	cmd.Flags().StringVar(&xmlIn, "xml-input", "", "input ETS group address export (XML)")
	cmd.Flags().StringVar(&xmlOut, "xml-output", "", "output path for the renamed XML")
	cmd.Flags().StringVar(&xlsxOut, "xlsx-output", "", "output path for the Excel mapping sheet")
	for _, name := range []string{"xml-input", "xml-output", "xlsx-output"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}

// printReport writes the conversion outcome for a human reader.
func printReport(w io.Writer, r *studio.Report) error {
	s := r.Summary
	lines := []string{
		fmt.Sprintf("Converted group addresses: %s", humanize.Comma(int64(r.Converted))),
		fmt.Sprintf("XLSX rows (without header): %s", humanize.Comma(int64(r.Rows))),
		fmt.Sprintf("Lights: %d, groups: %d, modules: %d, skipped: %d",
			s.LightCount, s.GroupCount, s.ModuleCount, s.Skipped()),
		fmt.Sprintf("XML output: %s%s", r.XMLOutput, fileSize(r.XMLOutput)),
		fmt.Sprintf("XLSX output: %s%s", r.XLSXOutput, fileSize(r.XLSXOutput)),
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// fileSize renders " (12 kB)" for an existing file, or "" when it cannot
// be read.
func fileSize(path string) string {
	info, err := os.Stat(path)
	if err != nil {
		return ""
	}
	return fmt.Sprintf(" (%s)", humanize.Bytes(uint64(info.Size())))
}
