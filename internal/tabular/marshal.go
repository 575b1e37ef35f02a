package tabular

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// MarshalJSON renders the table as a JSON array of records with keys in
// column order. encoding/json sorts map keys alphabetically, which
// would break the published column-order contract.
func (t *Table) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, row := range t.rows {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := marshalRow(&buf, t.cols, row); err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// MarshalJSON renders the nested records as a JSON array, keys in
// column order. A nil list encodes as null.
func (rl *RecordList) MarshalJSON() ([]byte, error) {
	if rl == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, rec := range rl.Records {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := marshalRow(&buf, rl.Columns, rec); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

func marshalRow(buf *bytes.Buffer, cols []string, row Row) error {
	buf.WriteByte('{')
	for i, col := range cols {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(col)
		if err != nil {
			return err
		}
		buf.Write(key)
		buf.WriteByte(':')
		value, err := json.Marshal(row[col])
		if err != nil {
			return fmt.Errorf("column %s: %w", col, err)
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return nil
}
