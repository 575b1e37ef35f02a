package tabular

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTable() *Table {
	return FromRows([]string{"gene", "tissue", "logfc"}, []Row{
		{"gene": "ENSG1", "tissue": "CBE", "logfc": 0.25},
		{"gene": "ENSG2", "tissue": "TCX", "logfc": -0.1},
		{"gene": "ENSG1", "tissue": "TCX", "logfc": nil},
	})
}

func TestSelect(t *testing.T) {
	tests := []struct {
		name    string
		cols    []string
		wantErr bool
	}{
		{name: "existing columns", cols: []string{"tissue", "gene"}},
		{name: "single column", cols: []string{"logfc"}},
		{name: "missing column", cols: []string{"gene", "nope"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := sampleTable()
			got, err := src.Select(tt.cols...)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.cols, got.Columns())
			assert.Equal(t, src.NumRows(), got.NumRows())
			// selection must not leak unrequested columns
			for _, r := range got.Rows() {
				assert.Len(t, r, len(tt.cols))
			}
		})
	}
}

func TestSelectPreservesOrder(t *testing.T) {
	got, err := sampleTable().Select("tissue", "gene")
	require.NoError(t, err)
	assert.Equal(t, []string{"tissue", "gene"}, got.Columns())
	assert.Equal(t, "ENSG1", got.Row(0)["gene"])
}

func TestRename(t *testing.T) {
	src := sampleTable()
	got := src.Rename(map[string]string{"gene": "ensembl_gene_id", "absent": "x"})
	assert.Equal(t, []string{"ensembl_gene_id", "tissue", "logfc"}, got.Columns())
	assert.Equal(t, "ENSG1", got.Row(0)["ensembl_gene_id"])
	assert.False(t, got.HasColumn("gene"))

	// source must be untouched
	assert.Equal(t, []string{"gene", "tissue", "logfc"}, src.Columns())
}

func TestRenameNilMapping(t *testing.T) {
	src := sampleTable()
	got := src.Rename(nil)
	assert.Equal(t, src.Columns(), got.Columns())
	assert.Equal(t, src.NumRows(), got.NumRows())
}

func TestDrop(t *testing.T) {
	got := sampleTable().Drop("logfc", "absent")
	assert.Equal(t, []string{"gene", "tissue"}, got.Columns())
	for _, r := range got.Rows() {
		_, ok := r["logfc"]
		assert.False(t, ok)
	}
}

func TestFilter(t *testing.T) {
	got := sampleTable().Filter(func(r Row) bool { return r["tissue"] == "TCX" })
	require.Equal(t, 2, got.NumRows())
	assert.Equal(t, "ENSG2", got.Row(0)["gene"])
	assert.Equal(t, "ENSG1", got.Row(1)["gene"])
}

func TestDropNulls(t *testing.T) {
	tests := []struct {
		name     string
		subset   []string
		wantRows int
	}{
		{name: "subset with nulls", subset: []string{"logfc"}, wantRows: 2},
		{name: "subset without nulls", subset: []string{"gene"}, wantRows: 3},
		{name: "all columns", subset: nil, wantRows: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sampleTable().DropNulls(tt.subset...)
			assert.Equal(t, tt.wantRows, got.NumRows())
		})
	}
}

func TestDropDuplicates(t *testing.T) {
	src := FromRows([]string{"a", "b"}, []Row{
		{"a": "x", "b": 1.0},
		{"a": "x", "b": 1.0},
		{"a": "x", "b": 2.0},
		{"a": "y", "b": 1.0},
	})

	got := src.DropDuplicates()
	require.Equal(t, 3, got.NumRows())
	assert.Equal(t, 1.0, got.Row(0)["b"])

	bySubset := src.DropDuplicates("a")
	require.Equal(t, 2, bySubset.NumRows())
}

func TestDropDuplicatesKeepsTypeDistinction(t *testing.T) {
	src := FromRows([]string{"a"}, []Row{
		{"a": 2.0},
		{"a": "2"},
	})
	got := src.DropDuplicates()
	assert.Equal(t, 2, got.NumRows())
}

func TestSetColumn(t *testing.T) {
	src := sampleTable()
	got := src.SetColumn("flag", func(r Row) interface{} { return r["tissue"] == "CBE" })
	assert.Equal(t, []string{"gene", "tissue", "logfc", "flag"}, got.Columns())
	assert.Equal(t, true, got.Row(0)["flag"])
	assert.Equal(t, false, got.Row(1)["flag"])
	assert.False(t, src.HasColumn("flag"))
}

func TestConcat(t *testing.T) {
	a := FromRows([]string{"x", "y"}, []Row{{"x": 1.0, "y": "a"}})
	b := FromRows([]string{"x", "z"}, []Row{{"x": 2.0, "z": true}})

	got := a.Concat(b)
	assert.Equal(t, []string{"x", "y", "z"}, got.Columns())
	require.Equal(t, 2, got.NumRows())
	assert.Nil(t, got.Row(0)["z"])
	assert.Nil(t, got.Row(1)["y"])
	assert.Equal(t, 2.0, got.Row(1)["x"])
}

func TestSortRows(t *testing.T) {
	src := FromRows([]string{"tissue", "model"}, []Row{
		{"tissue": "TCX", "model": "b"},
		{"tissue": "CBE", "model": "b"},
		{"tissue": "CBE", "model": "a"},
	})
	got := src.SortRows("tissue", "model")
	assert.Equal(t, "CBE", got.Row(0)["tissue"])
	assert.Equal(t, "a", got.Row(0)["model"])
	assert.Equal(t, "b", got.Row(1)["model"])
	assert.Equal(t, "TCX", got.Row(2)["tissue"])
}

func TestNumericValues(t *testing.T) {
	tests := []struct {
		name    string
		table   *Table
		col     string
		want    []float64
		wantErr bool
	}{
		{
			name: "floats with nulls skipped",
			table: FromRows([]string{"v"}, []Row{
				{"v": 1.5}, {"v": nil}, {"v": 2.5},
			}),
			col:  "v",
			want: []float64{1.5, 2.5},
		},
		{
			name: "strings coerced",
			table: FromRows([]string{"v"}, []Row{
				{"v": "3.25"}, {"v": " 4 "},
			}),
			col:  "v",
			want: []float64{3.25, 4},
		},
		{
			name: "bad string fails",
			table: FromRows([]string{"v"}, []Row{
				{"v": "abc"},
			}),
			col:     "v",
			wantErr: true,
		},
		{
			name:    "missing column fails",
			table:   New("v"),
			col:     "w",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.table.NumericValues(tt.col)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToFloat(t *testing.T) {
	f, err := ToFloat(7)
	require.NoError(t, err)
	assert.Equal(t, 7.0, f)

	_, err = ToFloat(nil)
	assert.Error(t, err)

	_, err = ToFloat(true)
	assert.Error(t, err)
}

func TestCloneIsIndependent(t *testing.T) {
	src := sampleTable()
	cp := src.Clone()
	cp.Row(0)["gene"] = "CHANGED"
	assert.Equal(t, "ENSG1", src.Row(0)["gene"])
}

func TestRecordListLen(t *testing.T) {
	var nilList *RecordList
	assert.Equal(t, 0, nilList.Len())
	assert.Equal(t, 2, (&RecordList{Records: []Row{{}, {}}}).Len())
}
