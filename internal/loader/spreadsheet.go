package loader

import (
	"github.com/xuri/excelize/v2"
)

// loadSpreadsheet reads a workbook and yields one Group per sheet, in
// workbook order, with the sheet name as the dataset-name suffix. Legacy
// binary .xls files fail here with ErrParse and are skipped by the caller
// like any other malformed file.
func loadSpreadsheet(path string) ([]Group, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, parseError(path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	groups := make([]Group, 0, len(sheets))
	for _, sheet := range sheets {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, parseError(path, err)
		}
		groups = append(groups, Group{Suffix: sheet, Records: tableToRecords(rows)})
	}
	return groups, nil
}
