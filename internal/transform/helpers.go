package transform

import (
	"fmt"

	apperrors "portaletl/internal/errors"
	"portaletl/internal/tabular"
)

// requireDataset fetches a named dataset from the collection.
func requireDataset(data *tabular.Collection, name string) (*tabular.Table, error) {
	t, ok := data.Get(name)
	if !ok {
		return nil, apperrors.NewMissingDataError(fmt.Sprintf("dataset %s", name))
	}
	return t, nil
}

// requireColumns projects t onto the given columns, failing with a
// missing-data error when any of them is absent.
func requireColumns(t *tabular.Table, cols ...string) (*tabular.Table, error) {
	for _, c := range cols {
		if !t.HasColumn(c) {
			return nil, apperrors.NewMissingDataError(fmt.Sprintf("column %s", c))
		}
	}
	return t.Select(cols...)
}

// deriveColumn is SetColumn with an error path, for derivations that can
// fail on malformed cells. The column is appended when new.
func deriveColumn(t *tabular.Table, name string, fn func(tabular.Row) (interface{}, error)) (*tabular.Table, error) {
	cols := t.Columns()
	if !t.HasColumn(name) {
		cols = append(cols, name)
	}
	out := tabular.New(cols...)
	for _, src := range t.Rows() {
		r := make(tabular.Row, len(cols))
		for k, v := range src {
			r[k] = v
		}
		v, err := fn(src)
		if err != nil {
			return nil, err
		}
		r[name] = v
		out.Append(r)
	}
	return out, nil
}

// coerceNumeric converts a column to float64 in a copy of the table.
// Null cells pass through; a cell that cannot be parsed fails the whole
// call with a type-coercion error.
func coerceNumeric(t *tabular.Table, col string) (*tabular.Table, error) {
	if !t.HasColumn(col) {
		return nil, apperrors.NewMissingDataError(fmt.Sprintf("column %s", col))
	}
	return deriveColumn(t, col, func(r tabular.Row) (interface{}, error) {
		v := r[col]
		if v == nil {
			return nil, nil
		}
		f, err := tabular.ToFloat(v)
		if err != nil {
			return nil, apperrors.NewCoercionError(fmt.Sprintf("column %s is not numeric", col), err)
		}
		return f, nil
	})
}
