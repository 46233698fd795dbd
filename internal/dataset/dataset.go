package dataset

import (
	"math"
	"path/filepath"
	"strings"
	"time"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Record is one row of a Dataset. Field iteration and JSON marshalling
// preserve insertion order, so records serialize with their source column
// order intact.
type Record = *orderedmap.OrderedMap[string, any]

// NewRecord returns an empty Record.
func NewRecord() Record {
	return orderedmap.New[string, any]()
}

// Dataset is a named, ordered sequence of Records.
type Dataset struct {
	Name    string
	Records []Record
}

// FileType is the detected format of a source file.
type FileType string

const (
	TypeSpreadsheet FileType = "spreadsheet"
	TypeJSON        FileType = "json"
	TypeCSV         FileType = "csv"
)

// FileRecord is the metadata kept for one successfully loaded source file.
type FileRecord struct {
	Path         string
	Type         FileType
	LastModified time.Time
	Size         int64
}

// DetectType maps a file path to its FileType by extension (case-insensitive).
// The second return value is false for unrecognized extensions.
func DetectType(path string) (FileType, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xls":
		return TypeSpreadsheet, true
	case ".json":
		return TypeJSON, true
	case ".csv":
		return TypeCSV, true
	default:
		return "", false
	}
}

// Recognized reports whether path has one of the supported extensions.
func Recognized(path string) bool {
	_, ok := DetectType(path)
	return ok
}

// Stem returns the file name without directory or extension, used as the
// base for derived dataset names.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// NormalizeValue coerces v into the scalar value domain. Null-like values
// (nil, NaN, infinities) become nil; native time values are rendered as
// RFC 3339 strings; everything else passes through unchanged. Nested
// containers produced by the JSON loader are left as-is.
func NormalizeValue(v any) any {
	switch x := v.(type) {
	case nil:
		return nil
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil
		}
		return x
	case float32:
		f := float64(x)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil
		}
		return f
	case time.Time:
		return x.UTC().Format(time.RFC3339)
	default:
		return v
	}
}
