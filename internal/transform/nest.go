package transform

import (
	"fmt"

	apperrors "portaletl/internal/errors"
	"portaletl/internal/tabular"
)

// NestFields collapses a table into two columns: the grouping key and a
// list of records built from each key's rows. The grouping column and
// any dropColumns are removed from the nested records; nulls inside the
// records stay explicit nulls. Output rows are ordered by ascending key
// with one row per distinct key, and nested records keep source order.
func NestFields(t *tabular.Table, grouping, newColumn string, dropColumns []string) (*tabular.Table, error) {
	if !t.HasColumn(grouping) {
		return nil, apperrors.NewMissingDataError(fmt.Sprintf("grouping column %s", grouping))
	}

	excluded := map[string]bool{grouping: true}
	for _, c := range dropColumns {
		excluded[c] = true
	}
	nestedCols := make([]string, 0, len(t.Columns()))
	for _, c := range t.Columns() {
		if !excluded[c] {
			nestedCols = append(nestedCols, c)
		}
	}

	out := tabular.New(grouping, newColumn)
	for _, g := range t.GroupBy(grouping) {
		records := make([]tabular.Row, 0, len(g.Rows))
		for _, r := range g.Rows {
			rec := make(tabular.Row, len(nestedCols))
			for _, c := range nestedCols {
				rec[c] = r[c]
			}
			records = append(records, rec)
		}
		out.Append(tabular.Row{
			grouping:  g.Key[grouping],
			newColumn: &tabular.RecordList{Columns: nestedCols, Records: records},
		})
	}
	return out, nil
}
