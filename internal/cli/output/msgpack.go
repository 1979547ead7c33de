package output

import (
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/yndnr/respcli/pkg/resp"
)

// MsgpackFormatter writes each reply as one MessagePack value. Bulk
// strings are encoded as bin so their bytes survive unchanged.
type MsgpackFormatter struct{}

// Format encodes the reply to w.
func (f *MsgpackFormatter) Format(w io.Writer, r resp.Reply) error {
	enc := msgpack.NewEncoder(w)
	enc.UseCompactInts(true)
	return enc.Encode(toBinaryValue(r))
}

func toBinaryValue(r resp.Reply) any {
	switch v := r.(type) {
	case resp.Bulk:
		return []byte(v)
	case resp.Array:
		out := make([]any, 0, len(v))
		for _, elem := range v {
			out = append(out, toBinaryValue(elem))
		}
		return out
	case resp.Nil, resp.Integer, resp.OK, resp.Status:
		return toValue(r)
	default:
		panic(fmt.Sprintf("output: unhandled reply type %T", r))
	}
}
