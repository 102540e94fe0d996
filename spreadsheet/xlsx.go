// Package spreadsheet reads the first sheet of an xlsx workbook into a table.
package spreadsheet

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	"investor-lookup/models"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("spreadsheet not found")

// ErrNoSheet indicates the workbook has no worksheet to read.
var ErrNoSheet = errors.New("workbook has no sheets")

// ReadError ties a read failure to the file that caused it.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("spreadsheet %q: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// ReadFirstSheet opens path and returns the first worksheet as a table named
// name. The first row is the header; the rest are data rows, padded to the
// header width. Cells hold their stored values, not the display text, so a
// number formatted as "(200.00)" reads as "-200" and a date as its serial.
func ReadFirstSheet(path, name string) (*models.Table, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &ReadError{Path: path, Err: ErrFileNotFound}
		}
		return nil, &ReadError{Path: path, Err: err}
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &ReadError{Path: path, Err: fmt.Errorf("open workbook: %w", err)}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &ReadError{Path: path, Err: ErrNoSheet}
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, &ReadError{Path: path, Err: fmt.Errorf("read sheet %q: %w", sheets[0], err)}
	}

	return fromRows(name, rows), nil
}

func fromRows(name string, rows [][]string) *models.Table {
	t := &models.Table{Name: name}
	if len(rows) == 0 {
		return t
	}

	// Data rows can be wider than the header when trailing header cells are
	// blank; widen the header to match.
	width := len(rows[0])
	for _, r := range rows[1:] {
		if len(r) > width {
			width = len(r)
		}
	}

	t.Columns = make([]string, width)
	copy(t.Columns, rows[0])

	t.Rows = make([][]string, 0, len(rows)-1)
	for _, r := range rows[1:] {
		row := make([]string, width)
		copy(row, r)
		t.Rows = append(t.Rows, row)
	}
	return t
}

// IsBlank reports whether every cell in row is empty or whitespace.
func IsBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
