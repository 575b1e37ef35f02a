package loader

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "portaletl/internal/errors"
	"portaletl/internal/tabular"
)

// readExcel reads one worksheet of an xlsx file. The first row is the
// header; fully blank rows are skipped and cells beyond the header
// width are ignored.
func (l *Loader) readExcel(path, sheet string) (*tabular.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apperrors.NewStorageError(fmt.Sprintf("open %s", path), err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, apperrors.NewParsingError(fmt.Sprintf("read sheet %q of %s", sheet, path), err)
	}
	if len(rows) == 0 {
		return nil, apperrors.NewParsingError(fmt.Sprintf("sheet %q of %s has no header row", sheet, path), nil)
	}

	header := rows[0]
	for len(header) > 0 && strings.TrimSpace(header[len(header)-1]) == "" {
		header = header[:len(header)-1]
	}
	table, err := newTable(path, header)
	if err != nil {
		return nil, err
	}

	for _, raw := range rows[1:] {
		if isBlankRow(raw) {
			continue
		}
		row := make(tabular.Row, len(header))
		for i, col := range header {
			if i < len(raw) {
				row[col] = inferCell(raw[i])
			} else {
				row[col] = nil
			}
		}
		table.Append(row)
	}
	return table, nil
}

func isBlankRow(cells []string) bool {
	for _, cell := range cells {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
