// Package migrations embeds the SQL schema for the dataset cache.
package migrations

import "embed"

// FS holds the migration files applied when a store opens.
//
//go:embed *.sql
var FS embed.FS
