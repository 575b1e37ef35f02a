package transform

import (
	"fmt"

	apperrors "portaletl/internal/errors"
	"portaletl/internal/tabular"
)

// notScoredMarker flags a score sub-component that was never computed
// for a row.
const notScoredMarker = "N"

// scoreFlags pairs each is-scored flag with the score column it gates.
var scoreFlags = []struct {
	flag  string
	score string
}{
	{"isscored_genetics", "geneticsscore"},
	{"isscored_omics", "omicsscore"},
	{"isscored_lit", "literaturescore"},
}

// TransformOverallScores cleans the per-gene scores table: sub-component
// scores whose is-scored flag reads "N" are nulled out, the literature
// score is coerced from text to numeric, and fully identical rows are
// collapsed to one.
func TransformOverallScores(data *tabular.Collection) (*tabular.Table, error) {
	src, err := requireDataset(data, DatasetOverallScores)
	if err != nil {
		return nil, err
	}
	for _, pair := range scoreFlags {
		for _, c := range []string{pair.flag, pair.score} {
			if !src.HasColumn(c) {
				return nil, apperrors.NewMissingDataError(fmt.Sprintf("column %s", c))
			}
		}
	}

	out := src
	for _, pair := range scoreFlags {
		flag, score := pair.flag, pair.score
		out = out.SetColumn(score, func(r tabular.Row) interface{} {
			if r[flag] == notScoredMarker {
				return nil
			}
			return r[score]
		})
	}

	out, err = coerceNumeric(out, "literaturescore")
	if err != nil {
		return nil, err
	}

	out, err = requireColumns(out, "ensg", "hgnc_gene_id", "overall", "geneticsscore", "omicsscore", "literaturescore")
	if err != nil {
		return nil, err
	}
	return out.DropDuplicates(), nil
}
