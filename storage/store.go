package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"investor-lookup/models"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

func init() {
	// modernc registers as "sqlite", which sqlx does not know by default.
	sqlx.BindDriver(DriverSQLite, sqlx.QUESTION)
}

var (
	intRegexp  = regexp.MustCompile(`^-?(0|[1-9]\d*)$`)
	realRegexp = regexp.MustCompile(`^-?(0|[1-9]\d*)(\.\d+)?$`)
)

type columnKind int

const (
	kindText columnKind = iota
	kindInteger
	kindReal
)

type dialect struct {
	intType    string
	realType   string
	textType   string
	rowOrder   string
	listTables string
}

var dialects = map[string]dialect{
	DriverSQLite: {
		intType:    "INTEGER",
		realType:   "REAL",
		textType:   "TEXT",
		rowOrder:   "rowid",
		listTables: `SELECT name FROM sqlite_master WHERE type = 'table'`,
	},
	DriverPostgres: {
		intType:    "BIGINT",
		realType:   "DOUBLE PRECISION",
		textType:   "TEXT",
		rowOrder:   "ctid",
		listTables: `SELECT table_name FROM information_schema.tables WHERE table_schema = current_schema()`,
	},
}

// Store persists the three lookup tables in SQLite or PostgreSQL.
type Store struct {
	db      *sqlx.DB
	driver  string
	dialect dialect
}

// Open connects to the store. For SQLite, dsn is a file path whose parent
// directory is created if needed.
func Open(driver, dsn string) (*Store, error) {
	d, ok := dialects[driver]
	if !ok {
		return nil, fmt.Errorf("store: unsupported driver %q", driver)
	}
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("store: dsn is required")
	}

	if driver == DriverSQLite && dsn != ":memory:" {
		clean := filepath.Clean(dsn)
		if err := os.MkdirAll(filepath.Dir(clean), 0755); err != nil {
			return nil, fmt.Errorf("store: create dir: %w", err)
		}
		dsn = clean + "?_pragma=busy_timeout(5000)"
	}

	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", driver, err)
	}
	if driver == DriverSQLite {
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: ping %s: %w", driver, err)
	}

	return &Store{db: db, driver: driver, dialect: d}, nil
}

// Driver returns the driver name the store was opened with.
func (s *Store) Driver() string { return s.driver }

// Close closes the database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// ReplaceTables drops and recreates every given table and inserts its rows,
// all inside one transaction. Either every table is replaced or none is.
func (s *Store) ReplaceTables(ctx context.Context, tables ...*models.Table) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, t := range tables {
		if err := s.replaceTable(ctx, tx, t); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("store: commit: %w", err)
	}
	return nil
}

func (s *Store) replaceTable(ctx context.Context, tx *sqlx.Tx, t *models.Table) error {
	if len(t.Columns) == 0 {
		return fmt.Errorf("store: table %q has no columns", t.Name)
	}

	kinds := inferKinds(t)
	defs := make([]string, len(t.Columns))
	quoted := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		quoted[i] = quoteIdent(c)
		defs[i] = quoted[i] + " " + s.sqlType(kinds[i])
	}

	table := quoteIdent(t.Name)
	if _, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS `+table); err != nil {
		return fmt.Errorf("store: drop %s: %w", t.Name, err)
	}
	if _, err := tx.ExecContext(ctx, `CREATE TABLE `+table+` (`+strings.Join(defs, ", ")+`)`); err != nil {
		return fmt.Errorf("store: create %s: %w", t.Name, err)
	}
	if len(t.Rows) == 0 {
		return nil
	}

	ph := strings.TrimRight(strings.Repeat("?,", len(t.Columns)), ",")
	insert := tx.Rebind(`INSERT INTO ` + table + ` (` + strings.Join(quoted, ", ") + `) VALUES (` + ph + `)`)
	stmt, err := tx.PreparexContext(ctx, insert)
	if err != nil {
		return fmt.Errorf("store: prepare insert %s: %w", t.Name, err)
	}
	defer stmt.Close()

	args := make([]any, len(t.Columns))
	for n, row := range t.Rows {
		for i := range t.Columns {
			var cell string
			if i < len(row) {
				cell = row[i]
			}
			args[i] = toSQLValue(cell, kinds[i])
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("store: insert %s row %d: %w", t.Name, n+1, err)
		}
	}
	return nil
}

// ReadTable returns every row of the named table in insertion order.
func (s *Store) ReadTable(ctx context.Context, name string) (*models.Table, error) {
	query := `SELECT * FROM ` + quoteIdent(name) + ` ORDER BY ` + s.dialect.rowOrder
	rows, err := s.db.QueryxContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("store: read %s: %w", name, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("store: columns %s: %w", name, err)
	}

	t := &models.Table{Name: name, Columns: cols}
	for rows.Next() {
		vals, err := rows.SliceScan()
		if err != nil {
			return nil, fmt.Errorf("store: scan %s: %w", name, err)
		}
		row := make([]string, len(vals))
		for i, v := range vals {
			row[i] = fromSQLValue(v)
		}
		t.Rows = append(t.Rows, row)
	}
	return t, rows.Err()
}

// Ready reports whether all three lookup tables exist.
func (s *Store) Ready(ctx context.Context) (bool, error) {
	var names []string
	if err := s.db.SelectContext(ctx, &names, s.dialect.listTables); err != nil {
		return false, fmt.Errorf("store: list tables: %w", err)
	}

	present := make(map[string]bool, len(names))
	for _, n := range names {
		present[n] = true
	}
	for _, want := range []string{models.TableInvestors, models.TableDeals, models.TableProjects} {
		if !present[want] {
			return false, nil
		}
	}
	return true, nil
}

// CountRows returns the number of rows in the named table.
func (s *Store) CountRows(ctx context.Context, name string) (int, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM `+quoteIdent(name)); err != nil {
		return 0, fmt.Errorf("store: count %s: %w", name, err)
	}
	return n, nil
}

func (s *Store) sqlType(k columnKind) string {
	switch k {
	case kindInteger:
		return s.dialect.intType
	case kindReal:
		return s.dialect.realType
	default:
		return s.dialect.textType
	}
}

// inferKinds picks the narrowest type that holds every non-blank value of a
// column. All-blank columns are text.
func inferKinds(t *models.Table) []columnKind {
	kinds := make([]columnKind, len(t.Columns))
	for i := range t.Columns {
		kind, seen := kindInteger, false
		for _, row := range t.Rows {
			if i >= len(row) {
				continue
			}
			v := strings.TrimSpace(row[i])
			if v == "" {
				continue
			}
			seen = true
			if kind == kindInteger && !isInteger(v) {
				kind = kindReal
			}
			if kind == kindReal && !realRegexp.MatchString(v) {
				kind = kindText
				break
			}
		}
		if !seen {
			kind = kindText
		}
		kinds[i] = kind
	}
	return kinds
}

func isInteger(v string) bool {
	if !intRegexp.MatchString(v) {
		return false
	}
	_, err := strconv.ParseInt(v, 10, 64)
	return err == nil
}

func toSQLValue(cell string, k columnKind) any {
	v := strings.TrimSpace(cell)
	if v == "" {
		return nil
	}
	switch k {
	case kindInteger:
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
		return v
	case kindReal:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		return v
	default:
		return cell
	}
}

func fromSQLValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case []byte:
		return string(x)
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case time.Time:
		return x.Format(time.RFC3339)
	default:
		return fmt.Sprint(x)
	}
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
