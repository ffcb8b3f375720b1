// Package report assembles the dashboard: it loads the example datasets,
// derives the reshaped tables, and binds the eight analysis sections to
// their charts. The result is built once at startup and only read afterwards.
package report
