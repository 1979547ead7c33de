package resp

import "strings"

// ErrorPrefix marks a Status that carries a server error.
const ErrorPrefix = "(error) "

// Reply is one decoded server reply.
//
// The set of implementations is closed: Nil, Integer, Status, OK, Bulk
// and Array.
type Reply interface {
	reply()
}

// Nil is the absence of a value ($-1 or *-1).
type Nil struct{}

// Integer is a signed integer reply.
type Integer int64

// Status is a one-line status reply. Error replies keep ErrorPrefix
// at the front of the text.
type Status string

// OK is the literal +OK acknowledgement.
type OK struct{}

// Bulk is a binary-safe byte string. The bytes are not guaranteed to be
// valid UTF-8.
type Bulk []byte

// Array is an ordered list of replies. A non-nil empty Array is distinct
// from Nil.
type Array []Reply

func (Nil) reply()     {}
func (Integer) reply() {}
func (Status) reply()  {}
func (OK) reply()      {}
func (Bulk) reply()    {}
func (Array) reply()   {}

// ErrorStatus builds the Status for an error message.
func ErrorStatus(msg string) Status {
	return Status(ErrorPrefix + msg)
}

// IsError reports whether the status carries a server error.
func (s Status) IsError() bool {
	return strings.HasPrefix(string(s), ErrorPrefix)
}

// Message returns the status text without the error marker.
func (s Status) Message() string {
	return strings.TrimPrefix(string(s), ErrorPrefix)
}

// TypeName returns a short lowercase name for the reply variant.
func TypeName(r Reply) string {
	switch v := r.(type) {
	case Nil:
		return "nil"
	case Integer:
		return "integer"
	case OK:
		return "ok"
	case Status:
		if v.IsError() {
			return "error"
		}
		return "status"
	case Bulk:
		return "bulk"
	case Array:
		return "array"
	default:
		return "unknown"
	}
}
