package transform

import (
	"fmt"

	"portaletl/internal/tabular"
	"portaletl/pkg/contracts/domain"
)

// DistributionParams carries the theoretical score maxima that pin each
// histogram's upper range.
type DistributionParams struct {
	OverallMaxScore    float64
	GeneticsMaxScore   float64
	OmicsMaxScore      float64
	LiteratureMaxScore float64
}

// synapseCatalogID is the catalog entry all four score distributions
// publish under.
const synapseCatalogID = "syn25913473"

// TransformDistributionData builds the four score-distribution summaries
// shown on the portal's gene comparison view: one per score column of
// the overall-scores table, each filtered to the rows where that score
// was actually computed. The overall score has no companion is-scored
// flag, so it falls back to keeping rows where any column reads "Y".
func TransformDistributionData(data *tabular.Collection, params DistributionParams) (*domain.DistributionSet, error) {
	src, err := requireDataset(data, DatasetOverallScores)
	if err != nil {
		return nil, err
	}
	scores, err := requireColumns(src,
		"ensg", "overall", "geneticsscore", "omicsscore", "literaturescore",
		"isscored_genetics", "isscored_omics", "isscored_lit")
	if err != nil {
		return nil, err
	}

	metrics := []struct {
		column     string
		isScored   string
		upperBound float64
		key        string
		name       string
		wikiID     string
	}{
		{"overall", "", params.OverallMaxScore, "target_risk_score", "Target Risk Score", "613107"},
		{"geneticsscore", "isscored_genetics", params.GeneticsMaxScore, "genetics_score", "Genetic Risk Score", "613104"},
		{"omicsscore", "isscored_omics", params.OmicsMaxScore, "multi_omics_score", "Multi-omic Risk Score", "613106"},
		{"literaturescore", "isscored_lit", params.LiteratureMaxScore, "literature_score", "Literature Score", "613105"},
	}

	out := domain.NewDistributionSet()
	for _, m := range metrics {
		dist, err := CalculateScoreDistribution(scores, m.column, m.isScored, m.upperBound)
		if err != nil {
			return nil, fmt.Errorf("distribution for %s: %w", m.column, err)
		}
		dist.Name = m.name
		dist.SynID = synapseCatalogID
		dist.WikiID = m.wikiID
		out.Add(m.key, dist)
	}
	return out, nil
}
