// Package repl provides interactive mode for resp-cli.
//
// This package implements the Read-Eval-Print Loop for interactive sessions:
//
//   - repl.go: Main REPL loop and command dispatch
//   - reader.go: Line readers for terminals (line editing) and pipes
//   - completer.go: Tab completion for command names
//   - history.go: Command history persistence
//
// Each input line is tokenized with shellword.Split, sent as one command
// and its reply rendered before the next line is read.
package repl
