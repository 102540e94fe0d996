package config

import (
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"INVESTORS_XLSX", "DEALS_XLSX", "PROJECTS_XLSX", "STORE_DRIVER", "STORE_PATH", "HTTP_ADDR"} {
		t.Setenv(k, "")
	}
	t.Chdir(t.TempDir())

	cfg := Load()
	if cfg.InvestorsPath != "data/All Investors Data - All Entity.xlsx" {
		t.Errorf("InvestorsPath: got %q", cfg.InvestorsPath)
	}
	if cfg.DealsPath != "data/Ethis Indonesia Deals.xlsx" {
		t.Errorf("DealsPath: got %q", cfg.DealsPath)
	}
	if cfg.ProjectsPath != "data/Project List EI.xlsx" {
		t.Errorf("ProjectsPath: got %q", cfg.ProjectsPath)
	}
	if cfg.StoreDriver != DriverSQLite {
		t.Errorf("StoreDriver: got %q, want %q", cfg.StoreDriver, DriverSQLite)
	}
	if cfg.DSN() != "investor_lookup.db" {
		t.Errorf("DSN: got %q, want the sqlite file path", cfg.DSN())
	}
}

func TestLoadPostgresDSN(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("STORE_DRIVER", "POSTGRES")
	t.Setenv("POSTGRES_HOST", "db")
	t.Setenv("POSTGRES_DB", "lookups")

	cfg := Load()
	if cfg.StoreDriver != DriverPostgres {
		t.Fatalf("StoreDriver: got %q, want %q", cfg.StoreDriver, DriverPostgres)
	}
	dsn := cfg.DSN()
	for _, want := range []string{"host=db", "dbname=lookups", "sslmode=disable"} {
		if !strings.Contains(dsn, want) {
			t.Errorf("DSN %q missing %q", dsn, want)
		}
	}
}
