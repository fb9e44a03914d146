// Package csvfile loads the earthquake dataset snapshot from a CSV file.
package csvfile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/couchcryptid/quake-dashboard/internal/domain"
)

var requiredColumns = []string{"Date", "Latitude", "Longitude", "Magnitude"}

// Load reads the dataset at path and builds the immutable store. Rows that
// cannot become events are logged and counted, not fatal.
func Load(path string, logger *slog.Logger) (*domain.Store, domain.BuildStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, domain.BuildStats{}, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	records, err := ReadRecords(f)
	if err != nil {
		return nil, domain.BuildStats{}, fmt.Errorf("read dataset %s: %w", path, err)
	}

	store, stats := domain.Build(records)
	for _, rowErr := range stats.Errors {
		logger.Debug("dataset row skipped", "path", path, "error", rowErr)
	}
	if stats.Skipped > 0 {
		logger.Warn("dataset rows skipped", "path", path, "skipped", stats.Skipped)
	}
	logger.Info("dataset loaded",
		"path", path,
		"rows", stats.Rows,
		"events", stats.Events,
		"undated", stats.Undated,
		"years", len(store.Facets().AvailableYears()),
		"loaded_at", store.LoadedAt(),
	)
	return store, stats, nil
}

// ReadRecords parses CSV rows into raw records by header name. Extra columns
// are ignored; the four dataset columns must be present.
func ReadRecords(r io.Reader) ([]domain.RawRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("no header row")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	colIdx := make(map[string]int, len(header))
	for i, h := range header {
		colIdx[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	for _, col := range requiredColumns {
		if _, ok := colIdx[col]; !ok {
			return nil, fmt.Errorf("missing column %q", col)
		}
	}

	var records []domain.RawRecord
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}

		records = append(records, domain.RawRecord{
			Date:      get(row, colIdx, "Date"),
			Latitude:  get(row, colIdx, "Latitude"),
			Longitude: get(row, colIdx, "Longitude"),
			Magnitude: get(row, colIdx, "Magnitude"),
		})
	}
	return records, nil
}

func get(row []string, idx map[string]int, col string) string {
	i, ok := idx[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
