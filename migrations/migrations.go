// Package migrations embeds the read schema the ingestion job writes into,
// one directory per SQL dialect.
package migrations

import "embed"

//go:embed sqlite3/*.sql postgres/*.sql
var FS embed.FS
