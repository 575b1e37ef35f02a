// Package exporter writes transformed datasets to the staging
// directory.
//
// This package contains two main components:
//
// Publisher: the output boundary of the pipeline. It writes one JSON
// file per dataset; tables become arrays of records with keys in
// column order, distribution sets become a single-element array
// holding the ordered metric mapping.
//
// CSVWriter: a debug writer that dumps any table as CSV, with an
// optional UTF-8 BOM for Excel compatibility, for inspecting
// intermediate pipeline state.
//
// Example usage:
//
//	pub := exporter.NewPublisher("staging", logger)
//	path, err := pub.PublishTable("gene_info", table)
//
//	dbg := exporter.NewCSVWriter("staging/debug", logger)
//	path, err = dbg.WriteTable("gene_info", table, exporter.WriteOptions{BOMPrefix: true})
package exporter
