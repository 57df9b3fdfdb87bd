package sql

import "embed"

// The static directory holds the schema migration files, scoped per driver
// with ansi/ as the shared fallback.
//
//go:embed static
var staticFS embed.FS
