package loader

import (
	"encoding/json"
	"fmt"
	"os"

	apperrors "portaletl/internal/errors"
	"portaletl/internal/tabular"
)

// readJSON reads a top-level JSON array of records. Column order is the
// order keys first appear across the records, which encoding/json maps
// would destroy, so records are decoded token by token.
func (l *Loader) readJSON(path string) (*tabular.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.NewStorageError(fmt.Sprintf("open %s", path), err)
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, apperrors.NewParsingError(fmt.Sprintf("read %s", path), err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '[' {
		return nil, apperrors.NewParsingError(fmt.Sprintf("%s: expected a top-level JSON array of records", path), nil)
	}

	var (
		columns []string
		seen    = make(map[string]bool)
		records []tabular.Row
	)
	for dec.More() {
		row, order, err := decodeRecord(dec)
		if err != nil {
			return nil, apperrors.NewParsingError(fmt.Sprintf("read %s record %d", path, len(records)+1), err)
		}
		for _, key := range order {
			if !seen[key] {
				seen[key] = true
				columns = append(columns, key)
			}
		}
		records = append(records, row)
	}
	if _, err := dec.Token(); err != nil {
		return nil, apperrors.NewParsingError(fmt.Sprintf("read %s", path), err)
	}

	table := tabular.New(columns...)
	for _, rec := range records {
		row := make(tabular.Row, len(columns))
		for _, col := range columns {
			row[col] = rec[col]
		}
		table.Append(row)
	}
	return table, nil
}

// decodeRecord consumes one JSON object, returning its fields and the
// order its keys appeared in.
func decodeRecord(dec *json.Decoder) (tabular.Row, []string, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, nil, fmt.Errorf("expected a JSON object, got %v", tok)
	}

	row := make(tabular.Row)
	var order []string
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, nil, fmt.Errorf("expected an object key, got %v", keyTok)
		}
		value, err := decodeValue(dec)
		if err != nil {
			return nil, nil, err
		}
		row[key] = value
		order = append(order, key)
	}
	if _, err := dec.Token(); err != nil {
		return nil, nil, err
	}
	return row, order, nil
}

// decodeValue consumes one JSON value. Numbers become float64, arrays
// []interface{} (empty arrays stay non-nil), objects
// map[string]interface{}, null nil.
func decodeValue(dec *json.Decoder) (interface{}, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			obj := make(map[string]interface{})
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("expected an object key, got %v", keyTok)
				}
				value, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				obj[key] = value
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return obj, nil
		case '[':
			arr := []interface{}{}
			for dec.More() {
				value, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				arr = append(arr, value)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return arr, nil
		}
		return nil, fmt.Errorf("unexpected delimiter %v", v)
	case json.Number:
		return v.Float64()
	default:
		return v, nil
	}
}
