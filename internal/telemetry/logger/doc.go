// Package logger provides structured logging for resp-cli.
//
// This package wraps log/slog:
//
//   - logger.go: Logger interface, handler setup, dynamic level
//   - context.go: Context-carried logger and session IDs
//   - redact.go: Masking of credentials in attributes and commands
//
// Logs are written to stderr at warn level unless configured otherwise.
package logger
