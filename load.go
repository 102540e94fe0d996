package main

import (
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"investor-lookup/models"
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Read the three spreadsheets and replace the store tables.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		start := time.Now()
		ctx := cmd.Context()
		if err := a.load(ctx); err != nil {
			return err
		}

		for _, name := range []string{models.TableInvestors, models.TableDeals, models.TableProjects} {
			n, err := a.store.CountRows(ctx, name)
			if err != nil {
				return err
			}
			a.logger.Info("[main] %-9s %s rows", name, humanize.Comma(int64(n)))
		}
		a.logger.Info("[main] Load finished in %s", time.Since(start).Round(time.Millisecond))
		return nil
	},
}
