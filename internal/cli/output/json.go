package output

import (
	"encoding/json"
	"io"

	"github.com/yndnr/respcli/pkg/resp"
)

// JSONFormatter formats replies as JSON.
type JSONFormatter struct{}

// Format formats the reply as indented JSON.
func (f *JSONFormatter) Format(w io.Writer, r resp.Reply) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(toValue(r))
}
