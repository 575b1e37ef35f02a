// Package tabular implements the rectangular dataset model shared by every
// stage of the pipeline: an ordered-column table of rows keyed by column name.
//
// # Architecture
//
// The package is organized around three types:
//
// 1. Table: an ordered column list plus rows, with relational operations
// 2. Collection: an insertion-ordered mapping from dataset name to Table
// 3. RecordList: the value type for nested record columns
//
// All operations are pure: they return new tables and never modify their
// receiver or arguments. Rows obtained from a Table must be treated as
// read-only by callers.
//
// # Usage
//
// Building a table and grouping it:
//
//	t := tabular.FromRows([]string{"tissue", "logfc"}, []tabular.Row{
//	    {"tissue": "CBE", "logfc": 0.25},
//	    {"tissue": "TCX", "logfc": -0.1},
//	})
//	for _, g := range t.GroupBy("tissue") {
//	    fmt.Println(g.Key["tissue"], len(g.Rows))
//	}
//
// Joins follow the left table's row order; grouped output is ordered by
// ascending group key so downstream serialization is deterministic.
package tabular
