package services

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"investor-lookup/models"
	"investor-lookup/spreadsheet"
	"investor-lookup/utils"
)

var (
	// amountRegexp captures the first signed numeric value once commas are gone
	amountRegexp = regexp.MustCompile(`-?\d*\.?\d+`)
)

// Cleaner prepares spreadsheet tables for the store. Header names are made
// unique and optionally case-normalized; trailing blank rows are trimmed.
type Cleaner struct {
	logger *utils.Logger
}

// NewCleaner creates a Cleaner with the given logger.
func NewCleaner(logger *utils.Logger) *Cleaner {
	return &Cleaner{logger: logger}
}

// Clean returns a copy of t ready to be written. Cell values are not touched.
func (c *Cleaner) Clean(t *models.Table, normalizeColumns bool) *models.Table {
	cols := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		if normalizeColumns {
			col = models.NormalizeColumnName(col)
		} else {
			col = strings.TrimSpace(col)
		}
		if col == "" {
			col = fmt.Sprintf("Unnamed: %d", i)
		}
		cols[i] = col
	}
	cols = dedupeColumns(cols)

	// Blank rows inside the sheet are data; only the tail is trimmed.
	end := len(t.Rows)
	for end > 0 && spreadsheet.IsBlank(t.Rows[end-1]) {
		end--
	}
	rows := make([][]string, end)
	copy(rows, t.Rows[:end])

	c.logger.Info("[cleaner] %s: %d columns, %d rows (trimmed %d trailing blank)",
		t.Name, len(cols), len(rows), len(t.Rows)-len(rows))
	return &models.Table{Name: t.Name, Columns: cols, Rows: rows}
}

// dedupeColumns renames repeated names with a numeric suffix: x, x_1, x_2.
// Names compare case-insensitively since SQL column names do.
func dedupeColumns(cols []string) []string {
	seen := make(map[string]int, len(cols))
	taken := make(map[string]struct{}, len(cols))
	for _, col := range cols {
		taken[strings.ToLower(col)] = struct{}{}
	}

	out := make([]string, len(cols))
	for i, col := range cols {
		key := strings.ToLower(col)
		n, dup := seen[key]
		if !dup {
			seen[key] = 0
			out[i] = col
			continue
		}
		for {
			n++
			candidate := fmt.Sprintf("%s_%d", col, n)
			if _, exists := taken[strings.ToLower(candidate)]; !exists {
				seen[key] = n
				taken[strings.ToLower(candidate)] = struct{}{}
				out[i] = candidate
				break
			}
		}
	}
	return out
}

// ParseAmount reads a money cell leniently.
// Examples:
//
//	"100"          → 100
//	"$1,200.50"    → 1200.5
//	"SGD 5,000"    → 5000
//	"(200.00)"     → -200
//	"", "n/a"      → 0
func ParseAmount(raw string) float64 {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if cleaned == "" {
		return 0
	}
	if len(cleaned) > 2 && strings.HasPrefix(cleaned, "(") && strings.HasSuffix(cleaned, ")") {
		return -ParseAmount(cleaned[1 : len(cleaned)-1])
	}
	if v, err := strconv.ParseFloat(cleaned, 64); err == nil {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0
		}
		return v
	}

	match := amountRegexp.FindString(cleaned)
	if match == "" {
		return 0
	}
	v, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0
	}
	return v
}
