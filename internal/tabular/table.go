package tabular

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Row is a single record keyed by column name. Cell values are scalars
// (string, float64, int, bool), nil for null, []interface{} for plain
// lists, or *RecordList for nested record columns.
type Row map[string]interface{}

// RecordList holds the sub-records of a nested record column together
// with their column order, so serialization stays deterministic.
type RecordList struct {
	Columns []string
	Records []Row
}

// Len returns the number of nested records. A nil list has length 0.
func (rl *RecordList) Len() int {
	if rl == nil {
		return 0
	}
	return len(rl.Records)
}

// Table is a rectangular dataset: an explicit column order plus rows keyed
// by column name. The zero value is an empty table with no columns.
type Table struct {
	cols []string
	rows []Row
}

// New returns an empty table with the given column order.
func New(cols ...string) *Table {
	return &Table{cols: append([]string(nil), cols...)}
}

// FromRows builds a table from a column order and pre-built rows. The
// table takes ownership of both slices.
func FromRows(cols []string, rows []Row) *Table {
	return &Table{cols: cols, rows: rows}
}

// Columns returns a copy of the column order.
func (t *Table) Columns() []string {
	return append([]string(nil), t.cols...)
}

// NumRows returns the number of rows.
func (t *Table) NumRows() int {
	return len(t.rows)
}

// Rows returns the underlying row slice. Callers must not modify the
// returned rows.
func (t *Table) Rows() []Row {
	return t.rows
}

// Row returns the i-th row. Callers must not modify it.
func (t *Table) Row(i int) Row {
	return t.rows[i]
}

// HasColumn reports whether the table has a column with the given name.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.cols {
		if c == name {
			return true
		}
	}
	return false
}

// Append adds a row to the table.
func (t *Table) Append(row Row) {
	t.rows = append(t.rows, row)
}

// Clone returns a deep copy of the table's structure: fresh column slice
// and fresh row maps. Cell values are shared.
func (t *Table) Clone() *Table {
	rows := make([]Row, len(t.rows))
	for i, r := range t.rows {
		nr := make(Row, len(r))
		for k, v := range r {
			nr[k] = v
		}
		rows[i] = nr
	}
	return &Table{cols: append([]string(nil), t.cols...), rows: rows}
}

// Select returns a new table containing only the given columns, in the
// given order. It fails if any column is missing.
func (t *Table) Select(cols ...string) (*Table, error) {
	for _, c := range cols {
		if !t.HasColumn(c) {
			return nil, fmt.Errorf("select: column %q not found", c)
		}
	}
	rows := make([]Row, len(t.rows))
	for i, r := range t.rows {
		nr := make(Row, len(cols))
		for _, c := range cols {
			nr[c] = r[c]
		}
		rows[i] = nr
	}
	return &Table{cols: append([]string(nil), cols...), rows: rows}, nil
}

// Drop returns a new table without the given columns. Missing columns are
// ignored.
func (t *Table) Drop(cols ...string) *Table {
	dropped := make(map[string]bool, len(cols))
	for _, c := range cols {
		dropped[c] = true
	}
	kept := make([]string, 0, len(t.cols))
	for _, c := range t.cols {
		if !dropped[c] {
			kept = append(kept, c)
		}
	}
	rows := make([]Row, len(t.rows))
	for i, r := range t.rows {
		nr := make(Row, len(kept))
		for _, c := range kept {
			nr[c] = r[c]
		}
		rows[i] = nr
	}
	return &Table{cols: kept, rows: rows}
}

// Rename returns a new table with columns renamed according to the
// mapping. Columns not present in the mapping keep their names; a nil
// mapping yields an unchanged copy.
func (t *Table) Rename(mapping map[string]string) *Table {
	cols := make([]string, len(t.cols))
	for i, c := range t.cols {
		if repl, ok := mapping[c]; ok {
			cols[i] = repl
		} else {
			cols[i] = c
		}
	}
	rows := make([]Row, len(t.rows))
	for i, r := range t.rows {
		nr := make(Row, len(r))
		for k, v := range r {
			if repl, ok := mapping[k]; ok {
				nr[repl] = v
			} else {
				nr[k] = v
			}
		}
		rows[i] = nr
	}
	return &Table{cols: cols, rows: rows}
}

// Filter returns a new table holding the rows for which keep returns true.
// Row order is preserved.
func (t *Table) Filter(keep func(Row) bool) *Table {
	rows := make([]Row, 0, len(t.rows))
	for _, r := range t.rows {
		if keep(r) {
			rows = append(rows, r)
		}
	}
	return &Table{cols: append([]string(nil), t.cols...), rows: rows}
}

// DropNulls returns a new table without the rows that have a nil value in
// any of the subset columns. An empty subset checks every column.
func (t *Table) DropNulls(subset ...string) *Table {
	cols := subset
	if len(cols) == 0 {
		cols = t.cols
	}
	return t.Filter(func(r Row) bool {
		for _, c := range cols {
			if r[c] == nil {
				return false
			}
		}
		return true
	})
}

// DropDuplicates returns a new table keeping only the first occurrence of
// each distinct combination of the subset columns. An empty subset
// compares every column.
func (t *Table) DropDuplicates(subset ...string) *Table {
	cols := subset
	if len(cols) == 0 {
		cols = t.cols
	}
	seen := make(map[string]bool, len(t.rows))
	return t.Filter(func(r Row) bool {
		key := rowKey(r, cols)
		if seen[key] {
			return false
		}
		seen[key] = true
		return true
	})
}

// SetColumn returns a new table with the named column set to the value
// produced by fn for each row. The column is appended to the column order
// when it does not already exist.
func (t *Table) SetColumn(name string, fn func(Row) interface{}) *Table {
	out := t.Clone()
	if !out.HasColumn(name) {
		out.cols = append(out.cols, name)
	}
	for _, r := range out.rows {
		r[name] = fn(r)
	}
	return out
}

// Concat returns a new table holding the rows of t followed by the rows
// of the others. The column order is the union of all column orders in
// first-seen order; cells absent from a source table are nil.
func (t *Table) Concat(others ...*Table) *Table {
	cols := append([]string(nil), t.cols...)
	seen := make(map[string]bool, len(cols))
	for _, c := range cols {
		seen[c] = true
	}
	tables := append([]*Table{t}, others...)
	total := 0
	for _, src := range tables {
		total += len(src.rows)
		for _, c := range src.cols {
			if !seen[c] {
				seen[c] = true
				cols = append(cols, c)
			}
		}
	}
	rows := make([]Row, 0, total)
	for _, src := range tables {
		for _, r := range src.rows {
			nr := make(Row, len(cols))
			for _, c := range cols {
				nr[c] = r[c]
			}
			rows = append(rows, nr)
		}
	}
	return &Table{cols: cols, rows: rows}
}

// NumericValues returns the non-null values of a column coerced to
// float64. Strings are parsed; a value that cannot be coerced fails the
// whole call.
func (t *Table) NumericValues(col string) ([]float64, error) {
	if !t.HasColumn(col) {
		return nil, fmt.Errorf("column %q not found", col)
	}
	out := make([]float64, 0, len(t.rows))
	for i, r := range t.rows {
		v := r[col]
		if v == nil {
			continue
		}
		f, err := ToFloat(v)
		if err != nil {
			return nil, fmt.Errorf("column %q row %d: %w", col, i, err)
		}
		out = append(out, f)
	}
	return out, nil
}

// ToFloat coerces a cell value to float64. Strings are parsed after
// trimming whitespace.
func ToFloat(v interface{}) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, fmt.Errorf("cannot coerce %q to a number", x)
		}
		return f, nil
	case nil:
		return 0, fmt.Errorf("cannot coerce null to a number")
	default:
		return 0, fmt.Errorf("cannot coerce %T to a number", v)
	}
}

// valueKey builds a canonical string for a cell value so that distinct
// counting and duplicate detection treat 2 and 2.0 as the same value but
// keep 2 and "2" apart.
func valueKey(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return "z"
	case string:
		return "s" + x
	case bool:
		if x {
			return "bt"
		}
		return "bf"
	case float64:
		return "f" + strconv.FormatFloat(x, 'g', -1, 64)
	case float32:
		return "f" + strconv.FormatFloat(float64(x), 'g', -1, 64)
	case int:
		return "f" + strconv.FormatFloat(float64(x), 'g', -1, 64)
	case int64:
		return "f" + strconv.FormatFloat(float64(x), 'g', -1, 64)
	default:
		return "o" + fmt.Sprint(v)
	}
}

// rowKey builds a canonical string for the given columns of a row.
func rowKey(r Row, cols []string) string {
	var b strings.Builder
	for _, c := range cols {
		b.WriteString(valueKey(r[c]))
		b.WriteByte(0x1f)
	}
	return b.String()
}

// compareValues orders two cell values: numbers sort before strings,
// strings before booleans, and nil after everything. Within a type the
// natural order applies.
func compareValues(a, b interface{}) int {
	ra, rb := valueRank(a), valueRank(b)
	if ra != rb {
		if ra < rb {
			return -1
		}
		return 1
	}
	switch ra {
	case 0:
		fa, _ := ToFloat(a)
		fb, _ := ToFloat(b)
		switch {
		case fa < fb:
			return -1
		case fa > fb:
			return 1
		}
		return 0
	case 1:
		return strings.Compare(a.(string), b.(string))
	case 2:
		ba, bb := a.(bool), b.(bool)
		switch {
		case !ba && bb:
			return -1
		case ba && !bb:
			return 1
		}
		return 0
	default:
		return 0
	}
}

func valueRank(v interface{}) int {
	switch v.(type) {
	case float64, float32, int, int64:
		return 0
	case string:
		return 1
	case bool:
		return 2
	case nil:
		return 3
	default:
		return 4
	}
}

// SortRows returns a new table with rows ordered ascending by the given
// columns. The sort is stable, so equal keys preserve source order.
func (t *Table) SortRows(by ...string) *Table {
	rows := append([]Row(nil), t.rows...)
	sort.SliceStable(rows, func(i, j int) bool {
		for _, c := range by {
			if cmp := compareValues(rows[i][c], rows[j][c]); cmp != 0 {
				return cmp < 0
			}
		}
		return false
	})
	return &Table{cols: append([]string(nil), t.cols...), rows: rows}
}
