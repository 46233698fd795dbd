package loader

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
)

// loadCSV reads a CSV file into a single anonymous Group, one Record per
// data row. The first row is the header. A file without a header row is
// malformed.
func loadCSV(path string) ([]Group, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, parseError(path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // ragged rows are padded later

	var rows [][]string
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, parseError(path, err)
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, parseError(path, errors.New("empty file"))
	}

	return []Group{{Records: tableToRecords(rows)}}, nil
}
