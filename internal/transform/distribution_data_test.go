package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "portaletl/internal/errors"
	"portaletl/internal/tabular"
)

func distributionDataFixture() *tabular.Collection {
	src := tabular.New(
		"ensg", "overall", "geneticsscore", "omicsscore", "literaturescore",
		"isscored_genetics", "isscored_omics", "isscored_lit",
	)
	rows := []tabular.Row{
		{"ensg": "G1", "overall": 1.0, "geneticsscore": 0.5, "omicsscore": 1.0, "literaturescore": 0.4,
			"isscored_genetics": "Y", "isscored_omics": "Y", "isscored_lit": "Y"},
		{"ensg": "G2", "overall": 2.0, "geneticsscore": 1.5, "omicsscore": 2.0, "literaturescore": 0.9,
			"isscored_genetics": "Y", "isscored_omics": "N", "isscored_lit": "Y"},
		{"ensg": "G3", "overall": 3.0, "geneticsscore": 2.5, "omicsscore": 3.0, "literaturescore": 1.4,
			"isscored_genetics": "N", "isscored_omics": "Y", "isscored_lit": "Y"},
		{"ensg": "G4", "overall": 4.0, "geneticsscore": 3.0, "omicsscore": 4.0, "literaturescore": 1.7,
			"isscored_genetics": "N", "isscored_omics": "N", "isscored_lit": "N"},
	}
	for _, r := range rows {
		src.Append(r)
	}
	data := tabular.NewCollection()
	data.Set(DatasetOverallScores, src)
	return data
}

func TestTransformDistributionData(t *testing.T) {
	params := DistributionParams{
		OverallMaxScore:    5,
		GeneticsMaxScore:   3,
		OmicsMaxScore:      4,
		LiteratureMaxScore: 2,
	}

	got, err := TransformDistributionData(distributionDataFixture(), params)
	require.NoError(t, err)

	require.Equal(t, []string{"target_risk_score", "genetics_score", "multi_omics_score", "literature_score"}, got.Keys())

	want := []struct {
		key      string
		name     string
		wikiID   string
		observed int
	}{
		// G4 has every flag off, so the any-truthy fallback excludes it
		// from the overall distribution.
		{"target_risk_score", "Target Risk Score", "613107", 3},
		{"genetics_score", "Genetic Risk Score", "613104", 2},
		{"multi_omics_score", "Multi-omic Risk Score", "613106", 2},
		{"literature_score", "Literature Score", "613105", 3},
	}
	for _, w := range want {
		t.Run(w.key, func(t *testing.T) {
			dist, ok := got.Get(w.key)
			require.True(t, ok)
			assert.Equal(t, w.name, dist.Name)
			assert.Equal(t, "syn25913473", dist.SynID)
			assert.Equal(t, w.wikiID, dist.WikiID)

			total := 0
			for _, n := range dist.Distribution {
				total += n
			}
			assert.Equal(t, w.observed, total)
			require.Len(t, dist.Bins, 10)
			assert.Equal(t, 0.0, dist.Bins[0][0])
		})
	}
}

func TestTransformDistributionDataMissingScoreColumn(t *testing.T) {
	src := tabular.New("ensg", "overall")
	data := tabular.NewCollection()
	data.Set(DatasetOverallScores, src)

	_, err := TransformDistributionData(data, DistributionParams{})
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeMissingData))
}
