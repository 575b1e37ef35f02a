package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "portaletl/internal/errors"
	"portaletl/internal/tabular"
)

func nestFixture() *tabular.Table {
	in := tabular.New("team", "name", "rank")
	for _, r := range []tabular.Row{
		{"team": "emory", "name": "Alice", "rank": 1.0},
		{"team": "emory", "name": "Bob", "rank": nil},
		{"team": "duke", "name": "Cara", "rank": 2.0},
	} {
		in.Append(r)
	}
	return in
}

func TestNestFields(t *testing.T) {
	got, err := NestFields(nestFixture(), "team", "members", nil)
	require.NoError(t, err)

	require.Equal(t, []string{"team", "members"}, got.Columns())
	require.Equal(t, 2, got.NumRows())

	// Output rows are ordered by grouping key; the grouping column is
	// removed from every nested record.
	assert.Equal(t, "duke", got.Row(0)["team"])
	duke, ok := got.Row(0)["members"].(*tabular.RecordList)
	require.True(t, ok)
	assert.Equal(t, []string{"name", "rank"}, duke.Columns)
	require.Equal(t, 1, duke.Len())
	assert.Equal(t, tabular.Row{"name": "Cara", "rank": 2.0}, duke.Records[0])

	emory, ok := got.Row(1)["members"].(*tabular.RecordList)
	require.True(t, ok)
	require.Equal(t, 2, emory.Len())
	assert.Equal(t, tabular.Row{"name": "Alice", "rank": 1.0}, emory.Records[0])
	// Nulls stay explicit nulls inside nested records.
	assert.Equal(t, tabular.Row{"name": "Bob", "rank": nil}, emory.Records[1])

	// Total nested records equals the input row count.
	assert.Equal(t, 3, duke.Len()+emory.Len())
}

func TestNestFieldsDropColumns(t *testing.T) {
	got, err := NestFields(nestFixture(), "team", "members", []string{"rank"})
	require.NoError(t, err)

	members, ok := got.Row(0)["members"].(*tabular.RecordList)
	require.True(t, ok)
	assert.Equal(t, []string{"name"}, members.Columns)
	assert.Equal(t, tabular.Row{"name": "Cara"}, members.Records[0])
}

func TestNestFieldsAllColumnsExcluded(t *testing.T) {
	got, err := NestFields(nestFixture(), "team", "members", []string{"name", "rank"})
	require.NoError(t, err)

	members, ok := got.Row(0)["members"].(*tabular.RecordList)
	require.True(t, ok)
	assert.Empty(t, members.Columns)
	require.Equal(t, 1, members.Len())
	assert.Equal(t, tabular.Row{}, members.Records[0])
}

func TestNestFieldsMissingGroupingColumn(t *testing.T) {
	_, err := NestFields(nestFixture(), "absent", "members", nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeMissingData))
}
