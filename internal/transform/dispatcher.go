package transform

import (
	"portaletl/internal/tabular"
	"portaletl/pkg/contracts/domain"
)

// Dataset names the dispatcher routes on. The set is closed: a name
// outside it has no transform and passes through the pipeline untouched.
const (
	DatasetGenesBiodomains              = "genes_biodomains"
	DatasetOverallScores                = "overall_scores"
	DatasetDistributionData             = "distribution_data"
	DatasetTeamInfo                     = "team_info"
	DatasetRNASeqDifferentialExpression = "rnaseq_differential_expression"
	DatasetGeneInfo                     = "gene_info"
	DatasetRNADistributionData          = "rna_distribution_data"
	DatasetProteomicsDistributionData   = "proteomics_distribution_data"
	DatasetProteomics                   = "proteomics"
)

// Registered reports whether a dataset name has a transform.
func Registered(name string) bool {
	switch name {
	case DatasetGenesBiodomains,
		DatasetOverallScores,
		DatasetDistributionData,
		DatasetTeamInfo,
		DatasetRNASeqDifferentialExpression,
		DatasetGeneInfo,
		DatasetRNADistributionData,
		DatasetProteomicsDistributionData,
		DatasetProteomics:
		return true
	}
	return false
}

// Options carries the configuration-supplied parameters for the
// transforms that take any.
type Options struct {
	GeneInfo     GeneInfoParams
	Distribution DistributionParams
}

// Result is a transform's output. Exactly one of Table and
// Distributions is non-nil.
type Result struct {
	Table         *tabular.Table
	Distributions *domain.DistributionSet
}

// Apply routes a dataset name to its transform. Unregistered names
// yield a nil Result and no error, so the caller can publish the loaded
// data as-is. Errors inside a transform propagate unchanged.
func Apply(data *tabular.Collection, name string, opts Options) (*Result, error) {
	switch name {
	case DatasetGenesBiodomains:
		return tableResult(TransformGenesBiodomains(data))
	case DatasetOverallScores:
		return tableResult(TransformOverallScores(data))
	case DatasetDistributionData:
		set, err := TransformDistributionData(data, opts.Distribution)
		if err != nil {
			return nil, err
		}
		return &Result{Distributions: set}, nil
	case DatasetTeamInfo:
		return tableResult(TransformTeamInfo(data))
	case DatasetRNASeqDifferentialExpression:
		return tableResult(TransformRNASeqDifferentialExpression(data))
	case DatasetGeneInfo:
		return tableResult(TransformGeneInfo(data, opts.GeneInfo))
	case DatasetRNADistributionData:
		return tableResult(TransformRNADistributionData(data))
	case DatasetProteomicsDistributionData:
		return tableResult(TransformProteomicsDistributionData(data))
	case DatasetProteomics:
		return tableResult(TransformProteomics(data))
	default:
		return nil, nil
	}
}

func tableResult(t *tabular.Table, err error) (*Result, error) {
	if err != nil {
		return nil, err
	}
	return &Result{Table: t}, nil
}
