// Package config provides CLI configuration for resp-cli.
//
// This package defines the configuration schema and its persistence:
//
//   - schema.go: CLIConfig struct (~/.respcli/cli.yaml)
//   - loader.go: layered loading (defaults < file < env < flags) and Save
//
// Configuration includes:
//
//   - Default server address or unix socket
//   - Named connection profiles
//   - Output format preference
//   - History file location and size
//   - Log level and metrics textfile
package config
