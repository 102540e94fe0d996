package main

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"investor-lookup/services"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup <email-or-id>",
	Short: "Print an investor profile, deal summary and platform snapshot.",
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

		query := strings.Join(args, " ")
		services.NewPrinter(os.Stdout).Print(svc.Lookup(query), svc.PlatformSnapshot())
		return nil
	},
}
