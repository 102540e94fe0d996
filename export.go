package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"investor-lookup/metrics"
	"investor-lookup/spreadsheet"
	"investor-lookup/storage"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export [email-or-id]",
	Short: "Write one investor profile, or every investor, to a .csv or .xlsx file.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		svc, err := a.lookupService(cmd.Context())
		if err != nil {
			return err
		}

		header, rows := svc.InvestorRows()
		kind := metrics.ExportInvestors
		single := len(args) == 1
		if single {
			inv, found := svc.FindInvestor(args[0])
			if !found {
				return fmt.Errorf("no investor found for %q", args[0])
			}
			rows = [][]string{inv.Record.Values}
			kind = metrics.ExportProfile
		}

		path := exportPath(exportOutput, single)
		if err := writeExport(path, header, rows); err != nil {
			return err
		}
		metrics.ExportsTotal.WithLabelValues(kind).Inc()
		a.logger.Info("[main] Wrote %d investor rows to %s", len(rows), path)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "",
		"output file (.csv or .xlsx); defaults to investor_profile.csv or all_investors.csv")
}

// exportPath returns output, or the default file name for the export kind.
func exportPath(output string, single bool) string {
	switch {
	case output != "":
		return output
	case single:
		return "investor_profile.csv"
	default:
		return "all_investors.csv"
	}
}

func writeExport(path string, header []string, rows [][]string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return spreadsheet.WriteFile(path, header, rows)
	case ".csv":
		w, err := storage.NewCSVFile(path, header)
		if err != nil {
			return err
		}
		if err := w.WriteRows(rows); err != nil {
			return errors.Join(err, w.Close())
		}
		return w.Close()
	default:
		return fmt.Errorf("export: unsupported file type %q", filepath.Ext(path))
	}
}
