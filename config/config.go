package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds all application configuration loaded from environment variables.
// With nothing set, every path falls back to the fixed locations the tool has
// always used.
type Config struct {
	InvestorsPath string
	DealsPath     string
	ProjectsPath  string

	StoreDriver string
	StorePath   string

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	HTTPAddr string
	LogLevel string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		InvestorsPath: getEnv("INVESTORS_XLSX", "data/All Investors Data - All Entity.xlsx"),
		DealsPath:     getEnv("DEALS_XLSX", "data/Ethis Indonesia Deals.xlsx"),
		ProjectsPath:  getEnv("PROJECTS_XLSX", "data/Project List EI.xlsx"),

		StoreDriver: strings.ToLower(getEnv("STORE_DRIVER", DriverSQLite)),
		StorePath:   getEnv("STORE_PATH", "investor_lookup.db"),

		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "lookup"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "lookup"),
		PostgresDB:       getEnv("POSTGRES_DB", "investor_lookup"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),

		HTTPAddr: getEnv("HTTP_ADDR", ":8501"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

// DSN returns the connection string for the configured store driver.
func (c *Config) DSN() string {
	if c.StoreDriver == DriverPostgres {
		return "host=" + c.PostgresHost +
			" port=" + c.PostgresPort +
			" user=" + c.PostgresUser +
			" password=" + c.PostgresPassword +
			" dbname=" + c.PostgresDB +
			" sslmode=" + c.PostgresSSLMode
	}
	return c.StorePath
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
