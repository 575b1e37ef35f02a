package transform

import (
	"strings"

	apperrors "portaletl/internal/errors"
	"portaletl/internal/tabular"
)

// contaminantMarker tags protein identifiers that belong to the known
// contaminant set of the upstream search engine.
const contaminantMarker = "CON__"

// TransformProteomics drops proteomics rows that cannot be attributed to
// a real protein: a null uniqid or one carrying the contaminant marker.
func TransformProteomics(data *tabular.Collection) (*tabular.Table, error) {
	src, err := requireDataset(data, DatasetProteomics)
	if err != nil {
		return nil, err
	}
	if !src.HasColumn("uniqid") {
		return nil, apperrors.NewMissingDataError("column uniqid")
	}

	out := src.DropNulls("uniqid")
	out = out.Filter(func(r tabular.Row) bool {
		id, ok := r["uniqid"].(string)
		return !ok || !strings.Contains(id, contaminantMarker)
	})
	return out, nil
}
