// Package confloader provides configuration loading for resp-cli.
//
// This package merges configuration sources using koanf:
//
//   - loader.go: Defaults, YAML file, RESPCLI_* environment, flag maps
//   - provider.go: koanf provider over a dotted-key map
//   - watcher.go: fsnotify-based change notification for the config file
//
// Priority (highest to lowest):
//
//  1. Command-line flags
//  2. Environment variables
//  3. Configuration file
//  4. Default values
package confloader
