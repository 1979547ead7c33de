// Package output provides reply formatting for resp-cli.
package output

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/yndnr/respcli/pkg/resp"
)

// Format represents the output format.
type Format string

const (
	FormatText Format = "text"
	FormatRaw  Format = "raw"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"

	// FormatMsgpack is binary; WriteReply adds no line terminator to it.
	FormatMsgpack Format = "msgpack"
)

// ErrUnknownFormat is returned by ParseFormat for unsupported names.
var ErrUnknownFormat = errors.New("output: unknown format")

// Formatter formats a reply for output.
type Formatter interface {
	Format(w io.Writer, r resp.Reply) error
}

// ParseFormat validates a format name. An empty name selects FormatText.
func ParseFormat(name string) (Format, error) {
	switch f := Format(name); f {
	case "":
		return FormatText, nil
	case FormatText, FormatRaw, FormatJSON, FormatYAML, FormatMsgpack:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q (want text, raw, json, yaml or msgpack)", ErrUnknownFormat, name)
	}
}

// NewFormatter creates a formatter for the given format.
func NewFormatter(format Format) Formatter {
	switch format {
	case FormatRaw:
		return &RawFormatter{}
	case FormatJSON:
		return &JSONFormatter{}
	case FormatYAML:
		return &YAMLFormatter{}
	case FormatMsgpack:
		return &MsgpackFormatter{}
	default:
		return &TextFormatter{}
	}
}

// WriteReply formats r into w as one unit. When a text rendering does not
// end in a newline (a top-level empty array) one is added.
func WriteReply(w io.Writer, f Formatter, r resp.Reply) error {
	var buf bytes.Buffer
	if err := f.Format(&buf, r); err != nil {
		return fmt.Errorf("format reply: %w", err)
	}
	if _, binary := f.(*MsgpackFormatter); !binary && buf.Len() > 0 && buf.Bytes()[buf.Len()-1] != '\n' {
		buf.WriteByte('\n')
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// toValue converts a reply into plain values for the structured encoders.
func toValue(r resp.Reply) any {
	switch v := r.(type) {
	case resp.Nil:
		return nil
	case resp.Integer:
		return int64(v)
	case resp.OK:
		return "OK"
	case resp.Status:
		if v.IsError() {
			return map[string]string{"error": v.Message()}
		}
		return string(v)
	case resp.Bulk:
		return bulkText(v)
	case resp.Array:
		out := make([]any, 0, len(v))
		for _, elem := range v {
			out = append(out, toValue(elem))
		}
		return out
	default:
		panic(fmt.Sprintf("output: unhandled reply type %T", r))
	}
}
