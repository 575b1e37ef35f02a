package transform

import (
	"portaletl/internal/stats"
	"portaletl/internal/tabular"
)

// TransformGenesBiodomains produces, per gene, the list of biological
// domains the gene is linked to, each link carrying the GO terms behind
// it and the share of the gene's terms that fall in that domain
// (pct_linking_terms).
func TransformGenesBiodomains(data *tabular.Collection) (*tabular.Table, error) {
	src, err := requireDataset(data, DatasetGenesBiodomains)
	if err != nil {
		return nil, err
	}
	base, err := requireColumns(src, "ensembl_gene_id", "biodomain", "go_terms")
	if err != nil {
		return nil, err
	}
	base = base.DropNulls()

	perBiodomain, err := CountGroupedTotal(base, []string{"biodomain"}, "go_terms", "n_biodomain_terms")
	if err != nil {
		return nil, err
	}
	perGene, err := CountGroupedTotal(base, []string{"ensembl_gene_id"}, "go_terms", "n_gene_total_terms")
	if err != nil {
		return nil, err
	}
	perGeneBiodomain, err := CountGroupedTotal(base, []string{"ensembl_gene_id", "biodomain"}, "go_terms", "n_gene_biodomain_terms")
	if err != nil {
		return nil, err
	}

	// One row per gene/biodomain pair, listing the linking GO terms in
	// source order.
	grouped := tabular.New("ensembl_gene_id", "biodomain", "go_terms")
	for _, g := range base.GroupBy("ensembl_gene_id", "biodomain") {
		grouped.Append(tabular.Row{
			"ensembl_gene_id": g.Key["ensembl_gene_id"],
			"biodomain":       g.Key["biodomain"],
			"go_terms":        g.Values("go_terms"),
		})
	}

	merged, err := grouped.LeftJoin(perBiodomain, []string{"biodomain"})
	if err != nil {
		return nil, err
	}
	merged, err = merged.LeftJoin(perGene, []string{"ensembl_gene_id"})
	if err != nil {
		return nil, err
	}
	merged, err = merged.LeftJoin(perGeneBiodomain, []string{"ensembl_gene_id", "biodomain"})
	if err != nil {
		return nil, err
	}

	merged = merged.SetColumn("pct_linking_terms", func(r tabular.Row) interface{} {
		linked, err := tabular.ToFloat(r["n_gene_biodomain_terms"])
		if err != nil {
			return nil
		}
		total, err := tabular.ToFloat(r["n_gene_total_terms"])
		if err != nil || total == 0 {
			return nil
		}
		return stats.RoundHalfEven(linked/total*100, 2)
	})
	merged = merged.Drop("n_gene_total_terms")

	return NestFields(merged, "ensembl_gene_id", "gene_biodomains", nil)
}
