package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/yndnr/respcli/pkg/resp"
)

// emptyArray is printed for a zero-length array. It is the one rendering
// without a trailing newline.
const emptyArray = "(empty list or set)"

// TextFormatter renders replies the way an interactive operator reads them.
type TextFormatter struct{}

// Format writes Render(r) to w.
func (f *TextFormatter) Format(w io.Writer, r resp.Reply) error {
	_, err := io.WriteString(w, Render(r))
	return err
}

// Render returns the display string of r.
func Render(r resp.Reply) string {
	var sb strings.Builder
	render(&sb, r, "")
	return sb.String()
}

// render writes r; indent prefixes every line after the first.
func render(sb *strings.Builder, r resp.Reply, indent string) {
	switch v := r.(type) {
	case resp.Nil:
		sb.WriteString("(nil)\n")
	case resp.Integer:
		sb.WriteString("(integer) ")
		sb.WriteString(strconv.FormatInt(int64(v), 10))
		sb.WriteByte('\n')
	case resp.OK:
		sb.WriteString("OK\n")
	case resp.Status:
		sb.WriteString(string(v))
		sb.WriteByte('\n')
	case resp.Bulk:
		sb.WriteByte('"')
		sb.WriteString(bulkText(v))
		sb.WriteString("\"\n")
	case resp.Array:
		renderArray(sb, v, indent)
	default:
		panic(fmt.Sprintf("output: unhandled reply type %T", r))
	}
}

func renderArray(sb *strings.Builder, arr resp.Array, indent string) {
	if len(arr) == 0 {
		sb.WriteString(emptyArray)
		return
	}

	width := len(strconv.Itoa(len(arr)))
	childIndent := indent + strings.Repeat(" ", width+2)

	for i, elem := range arr {
		if i > 0 {
			sb.WriteString(indent)
		}
		idx := strconv.Itoa(i + 1)
		sb.WriteString(strings.Repeat(" ", width-len(idx)))
		sb.WriteString(idx)
		sb.WriteString(") ")

		start := sb.Len()
		render(sb, elem, childIndent)
		if sb.Len() > start && !strings.HasSuffix(sb.String(), "\n") {
			sb.WriteByte('\n')
		}
	}
}

// bulkText returns b as text when it is valid UTF-8 and the binary-safe
// escape otherwise.
func bulkText(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	return EscapeBinary(b)
}

// EscapeBinary keeps printable ASCII bytes and writes every other byte as
// \xHH with lowercase hex digits.
func EscapeBinary(b []byte) string {
	const hexDigits = "0123456789abcdef"

	var sb strings.Builder
	sb.Grow(len(b))
	for _, c := range b {
		if c >= 0x20 && c < 0x7f {
			sb.WriteByte(c)
			continue
		}
		sb.WriteString(`\x`)
		sb.WriteByte(hexDigits[c>>4])
		sb.WriteByte(hexDigits[c&0x0f])
	}
	return sb.String()
}
