// Package resp implements the client side of the RESP wire protocol.
//
// This package provides:
//
//   - reply.go: Reply sum type (Nil, Integer, Status, OK, Bulk, Array)
//   - reader.go: Length-prefixed reply decoder
//   - writer.go: Command encoder (array of bulk strings)
//
// The decoder consumes exactly one reply per call and never reads past the
// declared lengths. Any framing violation is reported as ErrProtocol, after
// which the underlying stream must be discarded.
package resp
