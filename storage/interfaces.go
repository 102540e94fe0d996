package storage

import (
	"context"

	"investor-lookup/models"
)

// TableWriter is the interface any storage backend must satisfy to be loaded.
type TableWriter interface {
	ReplaceTables(ctx context.Context, tables ...*models.Table) error
	Close() error
}

// TableReader reads whole tables back out of the store.
type TableReader interface {
	ReadTable(ctx context.Context, name string) (*models.Table, error)
	Ready(ctx context.Context) (bool, error)
}
