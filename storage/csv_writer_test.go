package storage

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportCSVRoundTrip(t *testing.T) {
	header := []string{"record id - contact", "email", "notes"}
	row := []string{"C1", "a@b.com", `said "hi", left`}

	data, err := ExportCSV(header, [][]string{row})
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, header, records[0])
	assert.Equal(t, row, records[1])
}

func TestExportCSVHeaderOnly(t *testing.T) {
	data, err := ExportCSV([]string{"a", "b"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "a,b\n", string(data))
}

func TestCSVWriterPadsShortRows(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewCSVWriter(&buf, []string{"a", "b", "c"})
	require.NoError(t, err)
	require.NoError(t, w.WriteRows([][]string{{"1"}, {"1", "2", "3", "4"}}))
	require.NoError(t, w.Close())

	assert.Equal(t, "a,b,c\n1,,\n1,2,3\n", buf.String())
}

func TestNewCSVFileCreatesDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "all_investors.csv")
	w, err := NewCSVFile(path, []string{"id"})
	require.NoError(t, err)
	require.NoError(t, w.WriteRows([][]string{{"C1"}, {"C2"}}))
	require.NoError(t, w.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "id\nC1\nC2\n", string(data))
}
