// Package config handles configuration loading, parsing, and validation
// from a .env file, an optional config.yaml and TASKAL_* environment
// variables. It provides type-safe access to the settings needed by the
// server, the stores and the task rules while keeping configuration details
// separate from business logic.
package config
