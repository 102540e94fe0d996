package services

import (
	"context"
	"fmt"
	"time"

	"investor-lookup/config"
	"investor-lookup/metrics"
	"investor-lookup/models"
	"investor-lookup/spreadsheet"
	"investor-lookup/storage"
	"investor-lookup/utils"
)

// Source is one spreadsheet and the table it becomes.
type Source struct {
	Table            string
	Path             string
	NormalizeColumns bool
}

// DefaultSources returns the three spreadsheets named by cfg. Only investor
// headers are case-normalized.
func DefaultSources(cfg *config.Config) []Source {
	return []Source{
		{Table: models.TableDeals, Path: cfg.DealsPath},
		{Table: models.TableProjects, Path: cfg.ProjectsPath},
		{Table: models.TableInvestors, Path: cfg.InvestorsPath, NormalizeColumns: true},
	}
}

// Loader copies spreadsheets into the store, replacing whatever was there.
type Loader struct {
	store   storage.TableWriter
	cleaner *Cleaner
	logger  *utils.Logger
}

// NewLoader creates a Loader writing to store.
func NewLoader(store storage.TableWriter, logger *utils.Logger) *Loader {
	return &Loader{
		store:   store,
		cleaner: NewCleaner(logger),
		logger:  logger,
	}
}

// Load reads every source, then replaces all tables in one go. If any file is
// missing or unreadable nothing is written.
func (l *Loader) Load(ctx context.Context, sources []Source) error {
	start := time.Now()
	l.logger.Info("[loader] Loading %d spreadsheets", len(sources))

	tables, err := l.readAll(sources)
	if err != nil {
		metrics.LoadRunsTotal.WithLabelValues("failure").Inc()
		return fmt.Errorf("loader: %w", err)
	}

	for i, src := range sources {
		tables[i] = l.cleaner.Clean(tables[i], src.NormalizeColumns)
		if src.Table == models.TableInvestors {
			l.logColumns(tables[i])
		}
	}

	if err := l.store.ReplaceTables(ctx, tables...); err != nil {
		metrics.LoadRunsTotal.WithLabelValues("failure").Inc()
		return fmt.Errorf("loader: %w", err)
	}

	for _, t := range tables {
		metrics.TableRows.WithLabelValues(t.Name).Set(float64(len(t.Rows)))
		l.logger.Info("[loader] %s: %d rows stored", t.Name, len(t.Rows))
	}
	metrics.LoadDuration.Observe(time.Since(start).Seconds())
	metrics.LoadRunsTotal.WithLabelValues("success").Inc()
	l.logger.Info("[loader] Data loaded in %v", time.Since(start).Round(time.Millisecond))
	return nil
}

func (l *Loader) readAll(sources []Source) ([]*models.Table, error) {
	tables := make([]*models.Table, len(sources))
	pool := utils.NewWorkerPool(len(sources))

	for i, src := range sources {
		pool.Submit(func() error {
			t, err := spreadsheet.ReadFirstSheet(src.Path, src.Table)
			if err != nil {
				l.logger.Error("[loader] %s: %v", src.Table, err)
				return err
			}
			l.logger.Debug("[loader] Read %s: %d columns, %d rows", src.Path, len(t.Columns), len(t.Rows))
			tables[i] = t
			return nil
		})
	}

	if err := pool.Wait(); err != nil {
		return nil, err
	}
	return tables, nil
}

func (l *Loader) logColumns(t *models.Table) {
	l.logger.Debug("[loader] Investor columns:")
	for i, c := range t.Columns {
		l.logger.Debug("[loader] %d: '%s'", i, c)
	}
}
