package loader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "portaletl/internal/errors"
)

func TestLoadJSON(t *testing.T) {
	path := writeFixture(t, "gene_metadata.json", `[
		{"ensembl_gene_id": "ENSG1", "score": 1.5, "flagged": true, "alias": ["A", "B"], "target": null},
		{"ensembl_gene_id": "ENSG2", "alias": [], "druggability": {"sm_druggability_bucket": 2}}
	]`)

	table, err := New(nil).Load(path, Options{})
	require.NoError(t, err)

	assert.Equal(t,
		[]string{"ensembl_gene_id", "score", "flagged", "alias", "target", "druggability"},
		table.Columns())
	require.Equal(t, 2, table.NumRows())

	first := table.Row(0)
	assert.Equal(t, "ENSG1", first["ensembl_gene_id"])
	assert.Equal(t, 1.5, first["score"])
	assert.Equal(t, true, first["flagged"])
	assert.Equal(t, []interface{}{"A", "B"}, first["alias"])
	assert.Nil(t, first["target"])

	second := table.Row(1)
	assert.Nil(t, second["score"])

	alias, ok := second["alias"].([]interface{})
	require.True(t, ok, "empty JSON array should load as an empty list, not null")
	assert.Empty(t, alias)

	drugs, ok := second["druggability"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(2), drugs["sm_druggability_bucket"])
}

func TestLoadJSONRejectsNonArray(t *testing.T) {
	path := writeFixture(t, "object.json", `{"ensembl_gene_id": "ENSG1"}`)

	_, err := New(nil).Load(path, Options{})
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeParsing))
	assert.Contains(t, err.Error(), "top-level JSON array")
}

func TestLoadJSONMalformedRecord(t *testing.T) {
	path := writeFixture(t, "broken.json", `[{"gene": "ENSG1"}, {"gene": }]`)

	_, err := New(nil).Load(path, Options{})
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeParsing))
	assert.Contains(t, err.Error(), "record 2")
}

func TestLoadJSONEmptyArray(t *testing.T) {
	path := writeFixture(t, "empty.json", `[]`)

	table, err := New(nil).Load(path, Options{})
	require.NoError(t, err)
	assert.Empty(t, table.Columns())
	assert.Equal(t, 0, table.NumRows())
}
