package transform

import (
	"fmt"

	apperrors "portaletl/internal/errors"
	"portaletl/internal/stats"
	"portaletl/internal/tabular"
)

// GeneInfoParams carries the significance thresholds for the derived
// brain-change flags.
type GeneInfoParams struct {
	AdjustedPValueThreshold float64
	ProteinLevelThreshold   float64
}

// druggabilityColumns is the projection of the druggability source kept
// in its nested payload.
var druggabilityColumns = []string{
	"geneid",
	"sm_druggability_bucket",
	"safety_bucket",
	"abability_bucket",
	"pharos_class",
	"classification",
	"safety_bucket_definition",
	"abability_bucket_definition",
}

// geneInfoColumns is the published shape of the gene_info dataset.
var geneInfoColumns = []string{
	"ensembl_gene_id",
	"name",
	"summary",
	"symbol",
	"alias",
	"is_igap",
	"has_eqtl",
	"rna_in_ad_brain_change",
	"rna_brain_change_studied",
	"protein_in_ad_brain_change",
	"protein_brain_change_studied",
	"nominated_target",
	"median_expression",
	"druggability",
	"nominations",
}

// TransformGeneInfo denormalizes nine source datasets into one row per
// gene. Each prepared source is outer-joined onto the gene metadata on
// ensembl_gene_id with one-to-one validation, so a duplicated gene ID on
// either side fails the merge instead of fanning rows out. Genes missing
// from a source get explicit backfills: false for the membership flags
// and -1 for the p-value columns, which the derived brain-change flags
// read as "never studied".
func TransformGeneInfo(data *tabular.Collection, params GeneInfoParams) (*tabular.Table, error) {
	geneMetadata, err := requireDataset(data, "gene_metadata")
	if err != nil {
		return nil, err
	}
	igap, err := requireDataset(data, "igap")
	if err != nil {
		return nil, err
	}
	eqtl, err := requireDataset(data, "eqtl")
	if err != nil {
		return nil, err
	}
	proteomics, err := requireDataset(data, DatasetProteomics)
	if err != nil {
		return nil, err
	}
	rnaChange, err := requireDataset(data, "rna_expression_change")
	if err != nil {
		return nil, err
	}
	proteomicsTMT, err := requireDataset(data, "agora_proteomics_tmt")
	if err != nil {
		return nil, err
	}
	targetList, err := requireDataset(data, "target_list")
	if err != nil {
		return nil, err
	}
	medianExpression, err := requireDataset(data, "median_expression")
	if err != nil {
		return nil, err
	}
	druggability, err := requireDataset(data, "druggability")
	if err != nil {
		return nil, err
	}

	// Every gene on the IGAP list is an IGAP gene; the column rides along
	// through the merge and the backfill sets everyone else to false.
	igap = igap.SetColumn("is_igap", func(tabular.Row) interface{} { return true })

	// Smallest adjusted p-value per gene decides RNA significance.
	rnaMin, err := minByGroup(rnaChange, "ensembl_gene_id", "adj_p_val")
	if err != nil {
		return nil, err
	}

	// Both proteomics pipelines feed the same significance test; rows
	// missing any of the measurement columns carry no evidence.
	prot := proteomics.Concat(proteomicsTMT)
	for _, c := range []string{"ensembl_gene_id", "log2_fc", "cor_pval", "ci_lwr", "ci_upr"} {
		if !prot.HasColumn(c) {
			return nil, apperrors.NewMissingDataError(fmt.Sprintf("column %s", c))
		}
	}
	prot = prot.DropNulls("log2_fc", "cor_pval", "ci_lwr", "ci_upr")
	protMin, err := minByGroup(prot, "ensembl_gene_id", "cor_pval")
	if err != nil {
		return nil, err
	}

	targets, err := NestFields(targetList, "ensembl_gene_id", "nominated_target", nil)
	if err != nil {
		return nil, err
	}
	medians, err := NestFields(medianExpression, "ensembl_gene_id", "median_expression", nil)
	if err != nil {
		return nil, err
	}
	drugs, err := requireColumns(druggability, druggabilityColumns...)
	if err != nil {
		return nil, err
	}
	drugs, err = NestFields(drugs, "geneid", "druggability", nil)
	if err != nil {
		return nil, err
	}
	drugs = drugs.Rename(map[string]string{"geneid": "ensembl_gene_id"})

	merged := geneMetadata
	for _, right := range []struct {
		name  string
		table *tabular.Table
	}{
		{"igap", igap},
		{"eqtl", eqtl},
		{"rna_expression_change", rnaMin},
		{"proteomics", protMin},
		{"target_list", targets},
		{"median_expression", medians},
		{"druggability", drugs},
	} {
		merged, err = merged.OuterJoin(right.table, []string{"ensembl_gene_id"}, tabular.JoinOptions{ValidateOneToOne: true})
		if err != nil {
			return nil, apperrors.NewValidationError(fmt.Sprintf("merge %s: %v", right.name, err))
		}
	}

	for _, bf := range []struct {
		col   string
		value interface{}
	}{
		{"is_igap", false},
		{"has_eqtl", false},
		{"adj_p_val", -1.0},
		{"cor_pval", -1.0},
	} {
		if !merged.HasColumn(bf.col) {
			continue
		}
		col, value := bf.col, bf.value
		merged = merged.SetColumn(col, func(r tabular.Row) interface{} {
			if r[col] == nil {
				return value
			}
			return r[col]
		})
	}

	// The generic backfill cannot construct an empty list, so alias gets
	// repaired separately.
	if !merged.HasColumn("alias") {
		return nil, apperrors.NewMissingDataError("column alias")
	}
	merged = merged.SetColumn("alias", func(r tabular.Row) interface{} {
		if list, ok := r["alias"].([]interface{}); ok {
			return list
		}
		return []interface{}{}
	})

	merged = merged.SetColumn("rna_brain_change_studied", func(r tabular.Row) interface{} {
		p, err := tabular.ToFloat(r["adj_p_val"])
		return err == nil && p != -1
	})
	merged = merged.SetColumn("rna_in_ad_brain_change", func(r tabular.Row) interface{} {
		p, err := tabular.ToFloat(r["adj_p_val"])
		return err == nil && p != -1 && p <= params.AdjustedPValueThreshold
	})
	merged = merged.SetColumn("protein_brain_change_studied", func(r tabular.Row) interface{} {
		p, err := tabular.ToFloat(r["cor_pval"])
		return err == nil && p != -1
	})
	merged = merged.SetColumn("protein_in_ad_brain_change", func(r tabular.Row) interface{} {
		p, err := tabular.ToFloat(r["cor_pval"])
		return err == nil && p != -1 && p <= params.ProteinLevelThreshold
	})

	merged = merged.SetColumn("nominations", func(r tabular.Row) interface{} {
		if rl, ok := r["nominated_target"].(*tabular.RecordList); ok {
			return rl.Len()
		}
		return nil
	})

	out, err := requireColumns(merged, geneInfoColumns...)
	if err != nil {
		return nil, err
	}
	return out.DropNulls("ensembl_gene_id"), nil
}

// minByGroup keeps, per distinct key value, the smallest numeric value
// of col. Output columns are the key followed by col; a group with no
// usable values yields a null.
func minByGroup(t *tabular.Table, key, col string) (*tabular.Table, error) {
	for _, c := range []string{key, col} {
		if !t.HasColumn(c) {
			return nil, apperrors.NewMissingDataError(fmt.Sprintf("column %s", c))
		}
	}
	out := tabular.New(key, col)
	for _, g := range t.GroupBy(key) {
		values, err := g.NumericValues(col)
		if err != nil {
			return nil, apperrors.NewCoercionError(fmt.Sprintf("column %s is not numeric", col), err)
		}
		row := tabular.Row{key: g.Key[key], col: nil}
		if len(values) > 0 {
			mn, _ := stats.Min(values)
			row[col] = mn
		}
		out.Append(row)
	}
	return out, nil
}
