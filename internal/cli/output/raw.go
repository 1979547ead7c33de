package output

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/yndnr/respcli/pkg/resp"
)

// RawFormatter writes reply payloads without decoration, one per line.
// Bulk bytes are written as-is.
type RawFormatter struct{}

// Format writes r to w.
func (f *RawFormatter) Format(w io.Writer, r resp.Reply) error {
	bw := bufio.NewWriter(w)
	writeRaw(bw, r)
	return bw.Flush()
}

func writeRaw(w *bufio.Writer, r resp.Reply) {
	switch v := r.(type) {
	case resp.Nil:
		w.WriteByte('\n')
	case resp.Integer:
		w.WriteString(strconv.FormatInt(int64(v), 10))
		w.WriteByte('\n')
	case resp.OK:
		w.WriteString("OK\n")
	case resp.Status:
		w.WriteString(v.Message())
		w.WriteByte('\n')
	case resp.Bulk:
		w.Write(v)
		w.WriteByte('\n')
	case resp.Array:
		for _, elem := range v {
			writeRaw(w, elem)
		}
	default:
		panic(fmt.Sprintf("output: unhandled reply type %T", r))
	}
}
