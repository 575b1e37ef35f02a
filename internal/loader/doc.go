// Package loader reads configured source files into tabular form for
// the portal ETL pipeline.
//
// A Loader dispatches on file format (csv, tsv, json, xlsx) and returns
// a *tabular.Table whose column order matches the source. Cell text is
// mapped onto the pipeline's value model on the way in: empty cells
// become null, numeric text becomes float64, boolean literals become
// bool, and everything else stays a string. Sentinel tokens such as
// "n/a" are left alone here; rewriting them is the value normalizer's
// job.
//
// Example usage:
//
//	l := loader.New(logger)
//
//	// Format inferred from the extension.
//	table, err := l.Load("data/gene_info.json", loader.Options{})
//
//	// Explicit format and sheet for a workbook.
//	table, err = l.Load("data/scores.xlsx", loader.Options{
//		Format: loader.FormatXLSX,
//		Sheet:  "Scores",
//	})
package loader
