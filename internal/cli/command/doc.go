// Package command provides the resp-cli application.
//
// This package defines the CLI using urfave/cli/v2:
//
//   - root.go: App, global flags, mode detection
//   - session.go: per-invocation resources (config, logger, metrics, connection)
//   - oneshot.go: single-command mode with optional repeat
//   - connect.go: target resolution from flags and saved connections
//   - config.go: settings subcommand group
//
// With command words on the command line, resp-cli sends them as one
// command and exits. Without, it starts the REPL.
package command
