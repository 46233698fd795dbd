package loader

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/datadeck/datadeck/internal/dataset"
)

// Sentinel errors for per-file load failures.
var (
	// ErrUnsupportedFormat indicates a file extension outside the recognized set.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrParse indicates malformed content in a recognized file.
	ErrParse = errors.New("parse error")
)

// Group is one logical unit of a source file: a sheet, a JSON key, or the
// whole file. Suffix is empty when the file yields a single anonymous
// dataset; the registry derives the dataset name from the file stem and the
// suffix.
type Group struct {
	Suffix  string
	Records []dataset.Record
}

// LoadFile normalizes one source file into its Groups, preserving source
// order (sheet order, key order, row order).
func LoadFile(path string) ([]Group, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xls":
		return loadSpreadsheet(path)
	case ".json":
		return loadJSON(path)
	case ".csv":
		return loadCSV(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// parseError wraps err as an ErrParse for path.
func parseError(path string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrParse, filepath.Base(path), err)
}

// timestampLayouts are the textual date/time shapes recognized in CSV and
// spreadsheet cells. Matches are re-rendered as RFC 3339.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006",
}

// nullSentinels are cell values treated as null, mirroring the common
// spreadsheet/CSV conventions for missing data.
var nullSentinels = map[string]bool{
	"null": true, "NULL": true, "Null": true,
	"nan": true, "NaN": true, "NAN": true,
	"N/A": true, "n/a": true, "#N/A": true,
}

// inferCell converts a raw textual cell into a typed scalar: null sentinels
// and blanks become nil, then integer, float, boolean, and timestamp shapes
// are tried in that order. Anything else stays a string.
func inferCell(raw string) any {
	s := strings.TrimSpace(raw)
	if s == "" || nullSentinels[s] {
		return nil
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return dataset.NormalizeValue(f)
	}
	switch s {
	case "true", "True", "TRUE":
		return true
	case "false", "False", "FALSE":
		return false
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts.UTC().Format(time.RFC3339)
		}
	}
	return raw
}

// tableToRecords converts a header row plus data rows into Records. Ragged
// rows are padded with nil so every record carries the full field set, blank
// header cells get positional names, and duplicate header names get a
// numeric suffix so a later column cannot overwrite an earlier one. Data
// cells beyond the header width have no field name and are dropped.
func tableToRecords(rows [][]string) []dataset.Record {
	if len(rows) == 0 {
		return []dataset.Record{}
	}

	headers := make([]string, len(rows[0]))
	used := make(map[string]bool, len(rows[0]))
	for i, h := range rows[0] {
		h = strings.TrimSpace(h)
		if h == "" {
			h = fmt.Sprintf("column_%d", i)
		}
		name := h
		for n := 2; used[name]; n++ {
			name = fmt.Sprintf("%s_%d", h, n)
		}
		used[name] = true
		headers[i] = name
	}

	records := make([]dataset.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := dataset.NewRecord()
		for i, name := range headers {
			var cell string
			if i < len(row) {
				cell = row[i]
			}
			rec.Set(name, inferCell(cell))
		}
		records = append(records, rec)
	}
	return records
}
