// Package sqlite implements the dashboard dataset cache on SQLite.
package sqlite
