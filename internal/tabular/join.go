package tabular

import "fmt"

// JoinOptions tunes join behavior. The zero value performs a plain join.
type JoinOptions struct {
	// ValidateOneToOne fails the join when the key columns are not unique
	// on both sides.
	ValidateOneToOne bool
}

// LeftJoin joins right onto t on the given key columns. Every row of t
// appears in the output in source order; rows without a match carry nil
// in the right-hand columns. The output columns are t's columns followed
// by right's non-key columns.
func (t *Table) LeftJoin(right *Table, on []string, opts ...JoinOptions) (*Table, error) {
	return t.join(right, on, false, joinOpts(opts))
}

// OuterJoin joins right onto t keeping rows from both sides: t's rows in
// source order, then unmatched right rows in right's order with nil in
// the left-only columns.
func (t *Table) OuterJoin(right *Table, on []string, opts ...JoinOptions) (*Table, error) {
	return t.join(right, on, true, joinOpts(opts))
}

func joinOpts(opts []JoinOptions) JoinOptions {
	if len(opts) > 0 {
		return opts[0]
	}
	return JoinOptions{}
}

func (t *Table) join(right *Table, on []string, includeRightOnly bool, opts JoinOptions) (*Table, error) {
	for _, c := range on {
		if !t.HasColumn(c) {
			return nil, fmt.Errorf("join: key column %q not in left table", c)
		}
		if !right.HasColumn(c) {
			return nil, fmt.Errorf("join: key column %q not in right table", c)
		}
	}

	isKey := make(map[string]bool, len(on))
	for _, c := range on {
		isKey[c] = true
	}
	rightExtra := make([]string, 0, len(right.cols))
	for _, c := range right.cols {
		if isKey[c] {
			continue
		}
		if t.HasColumn(c) {
			return nil, fmt.Errorf("join: column %q exists on both sides", c)
		}
		rightExtra = append(rightExtra, c)
	}

	rightIndex := make(map[string][]int, len(right.rows))
	for i, r := range right.rows {
		k := rowKey(r, on)
		rightIndex[k] = append(rightIndex[k], i)
	}

	if opts.ValidateOneToOne {
		for k, idx := range rightIndex {
			if len(idx) > 1 {
				return nil, fmt.Errorf("join: keys are not unique in right table (%d rows share one key)", len(idx))
			}
			_ = k
		}
		leftSeen := make(map[string]bool, len(t.rows))
		for _, r := range t.rows {
			k := rowKey(r, on)
			if leftSeen[k] {
				return nil, fmt.Errorf("join: keys are not unique in left table")
			}
			leftSeen[k] = true
		}
	}

	cols := append(append([]string(nil), t.cols...), rightExtra...)
	rows := make([]Row, 0, len(t.rows))
	matched := make([]bool, len(right.rows))

	for _, lr := range t.rows {
		k := rowKey(lr, on)
		idx := rightIndex[k]
		if len(idx) == 0 {
			nr := make(Row, len(cols))
			for _, c := range t.cols {
				nr[c] = lr[c]
			}
			for _, c := range rightExtra {
				nr[c] = nil
			}
			rows = append(rows, nr)
			continue
		}
		for _, ri := range idx {
			matched[ri] = true
			rr := right.rows[ri]
			nr := make(Row, len(cols))
			for _, c := range t.cols {
				nr[c] = lr[c]
			}
			for _, c := range rightExtra {
				nr[c] = rr[c]
			}
			rows = append(rows, nr)
		}
	}

	if includeRightOnly {
		for ri, rr := range right.rows {
			if matched[ri] {
				continue
			}
			nr := make(Row, len(cols))
			for _, c := range t.cols {
				if isKey[c] {
					nr[c] = rr[c]
				} else {
					nr[c] = nil
				}
			}
			for _, c := range rightExtra {
				nr[c] = rr[c]
			}
			rows = append(rows, nr)
		}
	}

	return &Table{cols: cols, rows: rows}, nil
}
