package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/yndnr/respcli/internal/infra/confloader"
)

// ResolvePath returns path, or DefaultConfigPath when path is empty.
func ResolvePath(path string) string {
	if path == "" {
		return DefaultConfigPath()
	}
	return path
}

// Load loads CLI configuration with priority flags > env > file > defaults.
//
// An empty path selects DefaultConfigPath, which may be absent. An explicit
// path must exist. Keys in flags are dotted paths such as "history.file".
func Load(path string, flags map[string]any) (*CLIConfig, error) {
	explicit := path != ""
	path = ResolvePath(path)

	if _, err := os.Stat(path); err != nil {
		if !errors.Is(err, fs.ErrNotExist) || explicit {
			return nil, fmt.Errorf("config file: %w", err)
		}
		path = ""
	}

	loader := confloader.NewLoader(
		confloader.WithConfigFile(path),
		confloader.WithDefaults(Defaults()),
	)

	cfg := &CLIConfig{}
	if err := loader.Load(cfg); err != nil {
		return nil, err
	}
	if len(flags) > 0 {
		if err := loader.LoadMap(flags); err != nil {
			return nil, err
		}
		if err := loader.Unmarshal(cfg); err != nil {
			return nil, fmt.Errorf("unmarshal flags: %w", err)
		}
	}
	if cfg.Connections == nil {
		cfg.Connections = make(map[string]ConnectionConfig)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save saves CLI configuration to file with mode 0600.
func Save(cfg *CLIConfig, path string) error {
	path = ResolvePath(path)

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	data, err := Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// Marshal encodes cfg as YAML in the layout Load reads back.
func Marshal(cfg *CLIConfig) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// MarshalYAML writes Timeout in time.Duration string form.
func (c CLIConfig) MarshalYAML() (any, error) {
	type plain CLIConfig
	return struct {
		plain   `yaml:",inline"`
		Timeout string `yaml:"timeout"`
	}{plain(c), c.Timeout.String()}, nil
}
