// Package metric provides Prometheus metrics for resp-cli.
//
// Metrics cover one CLI session:
//
//   - respcli_commands_total{command}
//   - respcli_replies_total{type}
//   - respcli_errors_total{kind}
//   - respcli_command_duration_seconds
//
// They are written once, at exit, with WriteTextfile.
package metric
