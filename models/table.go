package models

import "strings"

// Table names in the store.
const (
	TableInvestors = "investors"
	TableDeals     = "deals"
	TableProjects  = "projects"
)

// Table is one spreadsheet worth of rows. Cells are kept as strings; a blank
// string is a missing value.
type Table struct {
	Name    string
	Columns []string
	Rows    [][]string
}

// Record returns row i paired with the table's columns.
func (t *Table) Record(i int) Record {
	return Record{Columns: t.Columns, Values: t.Rows[i]}
}

// Index builds a ColumnIndex over the table's columns.
func (t *Table) Index() ColumnIndex {
	ix := make(ColumnIndex, len(t.Columns))
	for i, c := range t.Columns {
		key := NormalizeColumnName(c)
		if _, dup := ix[key]; !dup {
			ix[key] = i
		}
	}
	return ix
}

// Record is a single row with its column names.
type Record struct {
	Columns []string
	Values  []string
}

// Get returns the value at column position i, or "" when out of range.
func (r Record) Get(i int) string {
	if i < 0 || i >= len(r.Values) {
		return ""
	}
	return r.Values[i]
}

// ColumnIndex maps normalized column names to positions.
type ColumnIndex map[string]int

// Lookup returns the position of the first name present, trying them in order.
func (ix ColumnIndex) Lookup(names ...string) (int, bool) {
	for _, n := range names {
		if i, ok := ix[NormalizeColumnName(n)]; ok {
			return i, true
		}
	}
	return -1, false
}

// Has reports whether any of names is a column.
func (ix ColumnIndex) Has(names ...string) bool {
	_, ok := ix.Lookup(names...)
	return ok
}

// NormalizeColumnName trims, turns non-breaking spaces and newlines into
// plain spaces and lower-cases a header.
func NormalizeColumnName(s string) string {
	s = strings.NewReplacer("\u00a0", " ", "\r\n", " ", "\n", " ", "\r", " ").Replace(s)
	return strings.ToLower(strings.TrimSpace(s))
}
