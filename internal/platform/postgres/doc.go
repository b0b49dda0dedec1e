// Package postgres provides PostgreSQL-specific implementations for the data
// storage interfaces defined in the internal/store package, together with the
// embedded goose migrations that create the schema they expect.
//
// Stores accept a store.DBTX so the same code runs against a pool or inside a
// transaction obtained through WithTx.
package postgres
