package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"investor-lookup/config"
	"investor-lookup/services"
	"investor-lookup/storage"
	"investor-lookup/utils"
)

var rootCmd = &cobra.Command{
	Use:           "investor-lookup",
	Short:         "Look up investors, their deals and platform totals from the spreadsheet exports.",
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	rootCmd.AddCommand(loadCmd, serveCmd, lookupCmd, exportCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		utils.NewLogger().Error("%v", err)
		os.Exit(1)
	}
}

// app bundles what every command needs.
type app struct {
	cfg    *config.Config
	logger *utils.Logger
	store  *storage.Store
}

func newApp() (*app, error) {
	cfg := config.Load()
	logger := utils.NewLoggerTo(os.Stdout, utils.ParseLevel(cfg.LogLevel))

	store, err := storage.Open(cfg.StoreDriver, cfg.DSN())
	if err != nil {
		return nil, err
	}
	logger.Debug("[main] Store opened (%s)", store.Driver())
	return &app{cfg: cfg, logger: logger, store: store}, nil
}

func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		a.logger.Warn("[main] Closing store: %v", err)
	}
}

func (a *app) load(ctx context.Context) error {
	return services.NewLoader(a.store, a.logger).Load(ctx, services.DefaultSources(a.cfg))
}

// provider reads from the store and fills it from the spreadsheets the first
// time it is found empty.
func (a *app) provider() *services.RepositoryProvider {
	return services.NewRepositoryProvider(a.store, a.load, a.logger)
}

func (a *app) lookupService(ctx context.Context) (*services.LookupService, error) {
	repo, err := a.provider().Repository(ctx)
	if err != nil {
		return nil, err
	}
	return services.NewLookupService(repo, a.logger), nil
}
