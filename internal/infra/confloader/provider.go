// Package confloader provides configuration loading for resp-cli.
package confloader

import (
	"errors"

	"github.com/knadh/koanf/maps"
)

// ErrReadBytesNotSupported is returned when ReadBytes is called on a map provider.
var ErrReadBytesNotSupported = errors.New("confloader: ReadBytes not supported by map provider, use Read() instead")

// mapProvider loads configuration from a map keyed by dotted path.
type mapProvider map[string]any

// ReadBytes returns an error as map provider doesn't support byte serialization.
func (m mapProvider) ReadBytes() ([]byte, error) {
	return nil, ErrReadBytesNotSupported
}

// Read returns the configuration as a nested map.
func (m mapProvider) Read() (map[string]any, error) {
	flat := make(map[string]any, len(m))
	for k, v := range m {
		flat[k] = v
	}
	return maps.Unflatten(flat, "."), nil
}
