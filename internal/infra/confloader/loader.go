// Package confloader provides configuration loading for resp-cli.
//
// It uses Koanf to merge configuration sources with priority:
// Flag > Env > File > Default.
package confloader

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// DefaultEnvPrefix is the default environment variable prefix.
const DefaultEnvPrefix = "RESPCLI_"

// Loader loads configuration from multiple sources.
type Loader struct {
	k         *koanf.Koanf
	envPrefix string
	filePath  string
	defaults  map[string]any
	loaded    bool
}

// Option is a function that configures the Loader.
type Option func(*Loader)

// WithEnvPrefix sets the environment variable prefix.
func WithEnvPrefix(prefix string) Option {
	return func(l *Loader) {
		l.envPrefix = prefix
	}
}

// WithConfigFile sets the configuration file path.
func WithConfigFile(path string) Option {
	return func(l *Loader) {
		l.filePath = path
	}
}

// WithDefaults sets the lowest-priority values, keyed by dotted path.
func WithDefaults(defaults map[string]any) Option {
	return func(l *Loader) {
		l.defaults = defaults
	}
}

// NewLoader creates a new configuration loader.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		k:         koanf.New("."),
		envPrefix: DefaultEnvPrefix,
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Load loads defaults, the configuration file and environment variables,
// in that order, and unmarshals the result into target.
//
// Flags are layered on top afterwards with LoadMap and a second Unmarshal.
func (l *Loader) Load(target any) error {
	if l.defaults != nil {
		if err := l.LoadMap(l.defaults); err != nil {
			return fmt.Errorf("load defaults: %w", err)
		}
	}

	if l.filePath != "" {
		if err := l.LoadFile(l.filePath); err != nil {
			return fmt.Errorf("load config file: %w", err)
		}
	}

	if err := l.LoadEnv(); err != nil {
		return fmt.Errorf("load env: %w", err)
	}

	if err := l.Unmarshal(target); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}

	l.loaded = true
	return nil
}

// LoadFile loads configuration from a YAML file.
func (l *Loader) LoadFile(path string) error {
	if path == "" {
		return nil
	}

	if err := l.k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("load file %s: %w", path, err)
	}
	return nil
}

// LoadEnv loads configuration from environment variables.
//
// RESPCLI_HISTORY_MAX_SIZE resolves to the already known key
// history.max_size; names that match no known key have every underscore
// turned into a dot.
func (l *Loader) LoadEnv() error {
	known := make(map[string]string)
	for _, key := range l.k.Keys() {
		known[strings.ReplaceAll(key, ".", "_")] = key
	}

	envTransformer := func(s string) string {
		s = strings.ToLower(strings.TrimPrefix(s, l.envPrefix))
		if key, ok := known[s]; ok {
			return key
		}
		return strings.ReplaceAll(s, "_", ".")
	}

	provider := env.Provider(l.envPrefix, ".", envTransformer)
	if err := l.k.Load(provider, nil); err != nil {
		return fmt.Errorf("load env: %w", err)
	}
	return nil
}

// LoadMap loads configuration from a map keyed by dotted path.
func (l *Loader) LoadMap(data map[string]any) error {
	if err := l.k.Load(mapProvider(data), nil); err != nil {
		return fmt.Errorf("load map: %w", err)
	}
	return nil
}

// Unmarshal unmarshals the loaded configuration into the target struct
// using koanf tags.
func (l *Loader) Unmarshal(target any) error {
	return l.k.Unmarshal("", target)
}

// GetString returns a string value from the configuration.
func (l *Loader) GetString(key string) string {
	return l.k.String(key)
}

// GetInt returns an int value from the configuration.
func (l *Loader) GetInt(key string) int {
	return l.k.Int(key)
}

// IsLoaded returns true if configuration has been loaded.
func (l *Loader) IsLoaded() bool {
	return l.loaded
}

// FilePath returns the configured file path.
func (l *Loader) FilePath() string {
	return l.filePath
}

// All returns all configuration as a flat map.
func (l *Loader) All() map[string]any {
	return l.k.All()
}
