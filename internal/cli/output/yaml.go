package output

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/yndnr/respcli/pkg/resp"
)

// YAMLFormatter formats replies as YAML.
type YAMLFormatter struct{}

// Format formats the reply as a YAML document.
func (f *YAMLFormatter) Format(w io.Writer, r resp.Reply) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(toValue(r)); err != nil {
		return err
	}
	return enc.Close()
}
