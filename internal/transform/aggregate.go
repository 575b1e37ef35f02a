package transform

import (
	"fmt"

	apperrors "portaletl/internal/errors"
	"portaletl/internal/tabular"
)

// CountGroupedTotal counts the distinct non-null values of inputCol
// within each combination of the grouping columns. The result has one
// row per combination, carrying the grouping columns plus the count
// under outputCol, ordered by ascending group key. Everything else is
// dropped.
func CountGroupedTotal(t *tabular.Table, grouping []string, inputCol, outputCol string) (*tabular.Table, error) {
	for _, c := range grouping {
		if !t.HasColumn(c) {
			return nil, apperrors.NewMissingDataError(fmt.Sprintf("grouping column %s", c))
		}
	}
	if !t.HasColumn(inputCol) {
		return nil, apperrors.NewMissingDataError(fmt.Sprintf("column %s", inputCol))
	}

	cols := append(append([]string(nil), grouping...), outputCol)
	out := tabular.New(cols...)
	for _, g := range t.GroupBy(grouping...) {
		row := make(tabular.Row, len(cols))
		for _, c := range grouping {
			row[c] = g.Key[c]
		}
		row[outputCol] = g.DistinctCount(inputCol)
		out.Append(row)
	}
	return out, nil
}
