// Package logger provides structured logging functionality for the application.
//
// It utilizes Go's standard library log/slog package to implement structured JSON logging
// with configurable log levels, an optional rotating log file, and a request-scoped
// logger carried through context.Context.
package logger
