package loader

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	apperrors "portaletl/internal/errors"
)

// excelizeFixture writes the two-row dataset shared with the
// cross-format agreement test.
func excelizeFixture(t *testing.T) string {
	t.Helper()
	return writeWorkbook(t, func(f *excelize.File) {
		sheet := f.GetSheetName(0)
		require.NoError(t, f.SetCellValue(sheet, "A1", "gene"))
		require.NoError(t, f.SetCellValue(sheet, "B1", "score"))
		require.NoError(t, f.SetCellValue(sheet, "A2", "ENSG1"))
		require.NoError(t, f.SetCellValue(sheet, "B2", 1.5))
		require.NoError(t, f.SetCellValue(sheet, "A3", "ENSG2"))
	})
}

func writeWorkbook(t *testing.T, build func(f *excelize.File)) string {
	t.Helper()
	f := excelize.NewFile()
	build(f)
	path := filepath.Join(t.TempDir(), "fixture.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())
	return path
}

func TestLoadXLSX(t *testing.T) {
	path := writeWorkbook(t, func(f *excelize.File) {
		sheet := f.GetSheetName(0)
		require.NoError(t, f.SetCellValue(sheet, "A1", "gene"))
		require.NoError(t, f.SetCellValue(sheet, "B1", "score"))
		require.NoError(t, f.SetCellValue(sheet, "C1", "isscored"))
		require.NoError(t, f.SetCellValue(sheet, "A2", "ENSG1"))
		require.NoError(t, f.SetCellValue(sheet, "B2", 2.5))
		require.NoError(t, f.SetCellValue(sheet, "C2", "Y"))
		// Row 3 stays blank and must be skipped.
		require.NoError(t, f.SetCellValue(sheet, "A4", "ENSG2"))
		require.NoError(t, f.SetCellValue(sheet, "C4", "N"))
	})

	table, err := New(nil).Load(path, Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{"gene", "score", "isscored"}, table.Columns())
	require.Equal(t, 2, table.NumRows())

	first := table.Row(0)
	assert.Equal(t, "ENSG1", first["gene"])
	assert.Equal(t, 2.5, first["score"])
	assert.Equal(t, "Y", first["isscored"])

	second := table.Row(1)
	assert.Equal(t, "ENSG2", second["gene"])
	assert.Nil(t, second["score"])
	assert.Equal(t, "N", second["isscored"])
}

func TestLoadXLSXNamedSheet(t *testing.T) {
	path := writeWorkbook(t, func(f *excelize.File) {
		first := f.GetSheetName(0)
		require.NoError(t, f.SetCellValue(first, "A1", "ignored"))

		_, err := f.NewSheet("Scores")
		require.NoError(t, err)
		require.NoError(t, f.SetCellValue("Scores", "A1", "gene"))
		require.NoError(t, f.SetCellValue("Scores", "A2", "ENSG1"))
	})

	table, err := New(nil).Load(path, Options{Sheet: "Scores"})
	require.NoError(t, err)
	assert.Equal(t, []string{"gene"}, table.Columns())
	require.Equal(t, 1, table.NumRows())
	assert.Equal(t, "ENSG1", table.Row(0)["gene"])
}

func TestLoadXLSXMissingSheet(t *testing.T) {
	path := writeWorkbook(t, func(f *excelize.File) {
		require.NoError(t, f.SetCellValue(f.GetSheetName(0), "A1", "gene"))
	})

	_, err := New(nil).Load(path, Options{Sheet: "Absent"})
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeParsing))
}

func TestLoadXLSXBooleanCells(t *testing.T) {
	path := writeWorkbook(t, func(f *excelize.File) {
		sheet := f.GetSheetName(0)
		require.NoError(t, f.SetCellValue(sheet, "A1", "is_igap"))
		require.NoError(t, f.SetCellValue(sheet, "A2", true))
	})

	table, err := New(nil).Load(path, Options{})
	require.NoError(t, err)
	require.Equal(t, 1, table.NumRows())
	assert.Equal(t, true, table.Row(0)["is_igap"])
}
