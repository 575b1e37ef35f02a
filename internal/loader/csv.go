package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	apperrors "portaletl/internal/errors"
	"portaletl/internal/tabular"
)

// readDelimited reads a csv or tsv file. The first record is the
// header; short records are padded with nulls and longer records are a
// parse error.
func (l *Loader) readDelimited(path string, delimiter rune) (*tabular.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.NewStorageError(fmt.Sprintf("open %s", path), err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = delimiter
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err == io.EOF {
		return nil, apperrors.NewParsingError(fmt.Sprintf("%s has no header row", path), nil)
	}
	if err != nil {
		return nil, apperrors.NewParsingError(fmt.Sprintf("read header of %s", path), err)
	}
	// Files written for Excel carry a UTF-8 BOM in front of the first
	// column name.
	header[0] = strings.TrimPrefix(header[0], "\ufeff")

	table, err := newTable(path, header)
	if err != nil {
		return nil, err
	}

	recordNum := 0
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, apperrors.NewParsingError(fmt.Sprintf("read %s", path), err)
		}
		recordNum++
		if len(record) > len(header) {
			return nil, apperrors.NewParsingError(
				fmt.Sprintf("%s record %d has %d fields, header has %d", path, recordNum, len(record), len(header)), nil)
		}

		row := make(tabular.Row, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = inferCell(record[i])
			} else {
				row[col] = nil
			}
		}
		table.Append(row)
	}
	return table, nil
}
