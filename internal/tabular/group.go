package tabular

import "sort"

// Group is one bucket of a GroupBy: the key values plus the member rows
// in source order. Rows are references into the source table and must be
// treated as read-only.
type Group struct {
	Key  Row
	Rows []Row
}

// GroupBy buckets rows by the given key columns. Rows with a nil value in
// any key column are excluded. Groups are returned in ascending key order
// and rows within a group keep their source order.
func (t *Table) GroupBy(by ...string) []Group {
	index := make(map[string]int)
	groups := make([]Group, 0)
	for _, r := range t.rows {
		skip := false
		for _, c := range by {
			if r[c] == nil {
				skip = true
				break
			}
		}
		if skip {
			continue
		}
		key := rowKey(r, by)
		gi, ok := index[key]
		if !ok {
			gi = len(groups)
			index[key] = gi
			keyRow := make(Row, len(by))
			for _, c := range by {
				keyRow[c] = r[c]
			}
			groups = append(groups, Group{Key: keyRow})
		}
		groups[gi].Rows = append(groups[gi].Rows, r)
	}
	sort.SliceStable(groups, func(i, j int) bool {
		for _, c := range by {
			if cmp := compareValues(groups[i].Key[c], groups[j].Key[c]); cmp != 0 {
				return cmp < 0
			}
		}
		return false
	})
	return groups
}

// DistinctCount returns the number of distinct non-null values of a
// column among the group's rows.
func (g Group) DistinctCount(col string) int {
	seen := make(map[string]bool, len(g.Rows))
	n := 0
	for _, r := range g.Rows {
		v := r[col]
		if v == nil {
			continue
		}
		k := valueKey(v)
		if !seen[k] {
			seen[k] = true
			n++
		}
	}
	return n
}

// Values returns the non-null values of a column among the group's rows,
// in source order.
func (g Group) Values(col string) []interface{} {
	out := make([]interface{}, 0, len(g.Rows))
	for _, r := range g.Rows {
		if v := r[col]; v != nil {
			out = append(out, v)
		}
	}
	return out
}

// NumericValues returns the group's non-null values of a column coerced
// to float64.
func (g Group) NumericValues(col string) ([]float64, error) {
	out := make([]float64, 0, len(g.Rows))
	for _, r := range g.Rows {
		v := r[col]
		if v == nil {
			continue
		}
		f, err := ToFloat(v)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}
