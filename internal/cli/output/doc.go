// Package output provides reply formatting for resp-cli.
//
// This package turns decoded replies into text:
//
//   - text.go: Canonical rendering ((nil), (integer) n, quoted bulks,
//     numbered arrays) and the binary-safe \xHH escape
//   - raw.go: Undecorated payloads for scripting
//   - json.go: JSON output formatting
//   - yaml.go: YAML output formatting
//   - msgpack.go: MessagePack output with bulk bytes as bin
//   - formatter.go: Formatter interface and factory
package output
