package csvfile

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/couchcryptid/quake-dashboard/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `Date,Time,Latitude,Longitude,Type,Depth,Magnitude,Magnitude Type
01/02/1965,13:44:18,19.246,145.616,Earthquake,131.6,6,MW
1975-02-23T02:58:41.000Z,02:58:41,-8.32,122.1,Earthquake,33,5.9,MW
03/11/2011,05:46:24,38.297,142.373,Earthquake,29,9.1,MWW
bogus,00:00:00,10.0,20.0,Earthquake,10,7.2,MW
02/27/2010,06:34:11,north,-72.898,Earthquake,22.9,8.8,MWW
`

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestReadRecords(t *testing.T) {
	records, err := ReadRecords(strings.NewReader(sampleCSV))

	require.NoError(t, err)
	require.Len(t, records, 5)
	assert.Equal(t, domain.RawRecord{Date: "01/02/1965", Latitude: "19.246", Longitude: "145.616", Magnitude: "6"}, records[0])
	assert.Equal(t, "1975-02-23T02:58:41.000Z", records[1].Date)
	assert.Equal(t, "bogus", records[3].Date)
}

func TestReadRecords_BOMAndShortRows(t *testing.T) {
	data := "\ufeffDate,Latitude,Longitude,Magnitude\n2020-01-01,1,2,5.5\n2020-01-02,3\n"

	records, err := ReadRecords(strings.NewReader(data))

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "2020-01-01", records[0].Date)
	assert.Equal(t, domain.RawRecord{Date: "2020-01-02", Latitude: "3"}, records[1])
}

func TestReadRecords_MissingColumn(t *testing.T) {
	_, err := ReadRecords(strings.NewReader("Date,Latitude,Longitude\n2020-01-01,1,2\n"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), `"Magnitude"`)
}

func TestReadRecords_Empty(t *testing.T) {
	_, err := ReadRecords(strings.NewReader(""))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no header row")
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "earth_data.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o600))

	store, stats, err := Load(path, discardLogger())

	require.NoError(t, err)
	assert.Equal(t, 5, stats.Rows)
	assert.Equal(t, 4, stats.Events)
	assert.Equal(t, 1, stats.Undated)
	assert.Equal(t, 1, stats.Skipped)
	assert.Equal(t, 4, store.Len())
	assert.Equal(t, []int{2011, 1975, 1965}, store.Facets().AvailableYears())
	assert.Equal(t, []int{1, 2, 3}, store.Facets().AvailableMonths())
}

func TestLoad_NonFiniteRowsSkipped(t *testing.T) {
	data := "Date,Latitude,Longitude,Magnitude\n" +
		"2020-03-01,NaN,10,6.5\n" +
		"2020-03-02,5,Inf,6.5\n" +
		"2020-03-03,5,6,-Inf\n" +
		"2020-03-04,5,6,6.5\n"
	path := filepath.Join(t.TempDir(), "earth_data.csv")
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	store, stats, err := Load(path, discardLogger())

	require.NoError(t, err)
	assert.Equal(t, 4, stats.Rows)
	assert.Equal(t, 1, stats.Events)
	assert.Equal(t, 3, stats.Skipped)
	assert.Equal(t, 1, store.Len())
}

func TestLoad_MissingFile(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "nope.csv"), discardLogger())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "open dataset")
}
