// Package connection provides connection management for resp-cli.
//
// This package owns the session's server connection:
//
//   - client.go: One RESP connection over tcp or a unix socket; sends a
//     command and decodes its reply
//   - manager.go: Endpoint selection and connection switching
//
// Errors are split in two kinds. ErrTransport means the connection was
// lost and will be redialed on the next command. ErrDesync means a reply
// could not be framed; the stream is unusable and the session must end.
package connection
