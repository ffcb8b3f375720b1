// Package dataset holds the tabular example datasets the dashboard charts.
//
// Datasets are parsed once from CSV, normalized with the same per-dataset
// profile the example-data provider applies, and are read-only afterwards.
package dataset
