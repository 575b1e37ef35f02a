package transform

import (
	"fmt"

	apperrors "portaletl/internal/errors"
	"portaletl/internal/tabular"
)

// proteomicsSourceTypes maps each supported proteomics source dataset to
// the measurement-type tag its rows carry in the combined output.
var proteomicsSourceTypes = map[string]string{
	DatasetProteomics: "LFQ",
	"proteomics_tmt":  "TMT",
	"proteomics_srm":  "SRM",
}

// TransformProteomicsDistributionData summarizes the log2 fold change
// per tissue for every supplied proteomics source and concatenates the
// summaries, tagging each row with the source's measurement type. A
// dataset name outside the supported set is a data-contract violation
// and fails the whole transform.
func TransformProteomicsDistributionData(data *tabular.Collection) (*tabular.Table, error) {
	if data.Len() == 0 {
		return nil, apperrors.NewValueError("no proteomics datasets supplied")
	}

	parts := make([]*tabular.Table, 0, data.Len())
	for _, name := range data.Names() {
		datatype, ok := proteomicsSourceTypes[name]
		if !ok {
			return nil, apperrors.NewValueError(fmt.Sprintf("proteomics dataset %q is not supported", name))
		}
		src, _ := data.Get(name)
		part, err := distributionByGroup(src, []string{"tissue"}, "log2_fc")
		if err != nil {
			return nil, fmt.Errorf("dataset %s: %w", name, err)
		}
		part = part.SetColumn("type", func(tabular.Row) interface{} { return datatype })
		parts = append(parts, part)
	}
	return parts[0].Concat(parts[1:]...), nil
}
