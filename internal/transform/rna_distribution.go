package transform

import (
	"portaletl/internal/tabular"
)

// TransformRNADistributionData summarizes the log fold change per
// tissue/model pair for the box plots on the portal's evidence pages.
// The differential-expression transform runs first so the summaries see
// the same display vocabularies as the detail rows; min and max are the
// Tukey fences rather than the observed extremes.
func TransformRNADistributionData(data *tabular.Collection) (*tabular.Table, error) {
	rna, err := TransformRNASeqDifferentialExpression(data)
	if err != nil {
		return nil, err
	}
	subset, err := requireColumns(rna, "tissue", "model", "logfc")
	if err != nil {
		return nil, err
	}
	grouped, err := distributionByGroup(subset, []string{"tissue", "model"}, "logfc")
	if err != nil {
		return nil, err
	}
	return grouped.Select("model", "tissue", "min", "max", "first_quartile", "median", "third_quartile")
}
