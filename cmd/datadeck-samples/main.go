// Command datadeck-samples writes a set of sample data files that exercise
// every supported format: a two-sheet workbook, a multi-dataset JSON object,
// a top-level JSON array, and a CSV table.
package main

import (
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"
)

func main() {
	dir := flag.String("dir", "data-docs", "directory to write sample files into")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	if err := os.MkdirAll(*dir, 0o755); err != nil {
		slog.Error("create sample directory", "dir", *dir, "err", err)
		os.Exit(1)
	}

	steps := []struct {
		name string
		fn   func(dir string) error
	}{
		{"data.xlsx", writeWorkbook},
		{"data.json", writeJSONObject},
		{"items.json", writeJSONArray},
		{"inventory.csv", writeCSV},
	}
	for _, s := range steps {
		if err := s.fn(*dir); err != nil {
			slog.Error("sample generation failed", "file", s.name, "err", err)
			os.Exit(1)
		}
		slog.Info("sample written", "file", filepath.Join(*dir, s.name))
	}
}

// writeWorkbook creates data.xlsx with an Employees sheet (10 rows) and a
// Departments sheet (3 rows).
func writeWorkbook(dir string) error {
	f := excelize.NewFile()
	defer f.Close()

	const employees = "Employees"
	// NewFile starts with a default sheet; rename it rather than leaving an
	// empty extra dataset behind.
	if err := f.SetSheetName("Sheet1", employees); err != nil {
		return err
	}
	if err := writeRows(f, employees, employeeRows()); err != nil {
		return err
	}

	const departments = "Departments"
	if _, err := f.NewSheet(departments); err != nil {
		return err
	}
	if err := writeRows(f, departments, departmentRows()); err != nil {
		return err
	}

	return f.SaveAs(filepath.Join(dir, "data.xlsx"))
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func employeeRows() [][]any {
	rows := [][]any{{"id", "name", "department", "salary", "hire_date", "is_active"}}
	hired := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 1; i <= 10; i++ {
		rows = append(rows, []any{
			i,
			fmt.Sprintf("Employee %d", i),
			fmt.Sprintf("Dept %d", (i%5)+1),
			30000 + i*7000,
			hired.AddDate(0, 0, i).Format("2006-01-02"),
			i%10 != 0,
		})
	}
	return rows
}

func departmentRows() [][]any {
	rows := [][]any{{"id", "name", "manager", "budget"}}
	for i := 1; i <= 3; i++ {
		rows = append(rows, []any{
			i,
			fmt.Sprintf("Department %d", i),
			fmt.Sprintf("Manager %d", i),
			100000 * i,
		})
	}
	return rows
}

// writeJSONObject creates data.json with employees and departments keys, so
// the loader derives two datasets from one file.
func writeJSONObject(dir string) error {
	type employee struct {
		ID         int    `json:"id"`
		Name       string `json:"name"`
		Department string `json:"department"`
		Salary     int    `json:"salary"`
	}
	type department struct {
		ID      int    `json:"id"`
		Name    string `json:"name"`
		Manager string `json:"manager"`
	}

	doc := map[string]any{
		"employees": []employee{
			{1, "Employee 1", "Dept 1", 52000},
			{2, "Employee 2", "Dept 2", 61000},
		},
		"departments": []department{
			{1, "Department 1", "Manager 1"},
			{2, "Department 2", "Manager 2"},
		},
	}
	return writeJSON(filepath.Join(dir, "data.json"), doc)
}

// writeJSONArray creates items.json with a top-level array, yielding a
// single dataset named after the file.
func writeJSONArray(dir string) error {
	type item struct {
		ID        int     `json:"id"`
		Name      string  `json:"name"`
		Category  string  `json:"category"`
		Value     float64 `json:"value"`
		CreatedAt string  `json:"created_at"`
	}

	now := time.Now().UTC()
	items := make([]item, 0, 3)
	for i := 1; i <= 3; i++ {
		items = append(items, item{
			ID:        i,
			Name:      fmt.Sprintf("Item %d", i),
			Category:  fmt.Sprintf("Category %d", (i%2)+1),
			Value:     float64(i) * 12.5,
			CreatedAt: now.Add(-time.Duration(i) * time.Hour).Format(time.RFC3339),
		})
	}
	return writeJSON(filepath.Join(dir, "items.json"), items)
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeCSV creates inventory.csv with ten data rows.
func writeCSV(dir string) error {
	f, err := os.Create(filepath.Join(dir, "inventory.csv"))
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"sku", "quantity", "price"}); err != nil {
		return err
	}
	for i := 1; i <= 10; i++ {
		row := []string{
			fmt.Sprintf("SKU-%03d", i),
			fmt.Sprintf("%d", i*5),
			fmt.Sprintf("%.2f", float64(i)*9.99),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
