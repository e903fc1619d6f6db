// Package logger provides structured logging functionality for the application.
//
// It builds on the standard library log/slog package: Setup configures a JSON
// handler at the configured level, and the context helpers carry a
// request-scoped logger (with a trace ID attached) through the call chain.
package logger
