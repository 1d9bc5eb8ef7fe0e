// Package db embeds the Variable Store's schema SQL and exposes it per
// dialect. The schema is a single idempotent CREATE TABLE/INDEX IF NOT
// EXISTS statement per dialect, applied by driver.Driver.Migrate on every
// Open rather than tracked through a versioned migrations table.
package db

import (
	_ "embed"

	"github.com/randalmurphal/quest/internal/db/driver"
)

//go:embed schema/variables_001.sql
var sqliteSchema string

//go:embed schema/postgres/variables_001.sql
var postgresSchema string

// Schema returns the embedded schema statement for dialect.
func Schema(dialect driver.Dialect) string {
	if dialect == driver.DialectPostgres {
		return postgresSchema
	}
	return sqliteSchema
}
