// Package transform implements the dataset-specific reshaping rules of
// the pipeline: cleaning and normalization, grouped aggregation, field
// nesting, score distributions, and one transform function per published
// dataset.
//
// # Architecture
//
// The package has two layers:
//
// 1. Building blocks: StandardizeColumnNames, StandardizeValues,
// RenameColumns, CountGroupedTotal, NestFields, and
// CalculateScoreDistribution operate on any table.
//
// 2. Dataset transforms: TransformGeneInfo, TransformGenesBiodomains,
// TransformTeamInfo and the rest each encode one dataset's business
// rules by composing the building blocks.
//
// Apply routes a dataset name to its transform over a closed registry.
// A name without a registered transform yields a nil result, which
// callers treat as "publish the loaded data as-is".
//
// All functions are pure: they return new tables and never modify the
// collection they receive.
package transform
