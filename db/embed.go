// Package db carries the SQL migrations embedded into the binary.
package db

import "embed"

//go:embed migrations/*.sql
var Migrations embed.FS

//go:embed sqlite_schema.sql
var SQLiteSchema string
