// Package derive computes the tables the dashboard charts that do not exist
// in the raw datasets: a wide pivot and a value-count summary.
package derive
