package postgres

import "embed"

// MigrationsDir is the directory of Migrations holding the SQL files.
const MigrationsDir = "migrations"

// Migrations holds the goose SQL migrations for the schema used by this package.
//
//go:embed migrations/*.sql
var Migrations embed.FS
