package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/yndnr/respcli/internal/cli/connection"
	"github.com/yndnr/respcli/internal/cli/output"
)

const (
	DefaultHost           = "127.0.0.1"
	DefaultPort           = 6379
	DefaultHistoryMaxSize = 1000
	DefaultLogLevel       = "warn"
	DefaultLogFormat      = "text"
)

var (
	// ErrInvalidConfig is returned by Validate.
	ErrInvalidConfig = errors.New("config: invalid configuration")

	// ErrUnknownConnection is returned when a named profile does not exist.
	ErrUnknownConnection = errors.New("config: unknown connection")
)

// CLIConfig is the configuration for resp-cli.
type CLIConfig struct {
	Host    string        `koanf:"host" yaml:"host"`
	Port    int           `koanf:"port" yaml:"port"`
	Socket  string        `koanf:"socket" yaml:"socket,omitempty"`
	Timeout time.Duration `koanf:"timeout" yaml:"-"`

	// Output is empty when the format should be picked from the terminal.
	Output string `koanf:"output" yaml:"output,omitempty"`

	History HistoryConfig `koanf:"history" yaml:"history"`
	Log     LogConfig     `koanf:"log" yaml:"log"`
	Metrics MetricsConfig `koanf:"metrics" yaml:"metrics"`

	// Saved connections
	Connections map[string]ConnectionConfig `koanf:"connections" yaml:"connections,omitempty"`

	// Current active connection
	CurrentConnection string `koanf:"current_connection" yaml:"current_connection,omitempty"`
}

// HistoryConfig controls the REPL history file.
type HistoryConfig struct {
	File    string `koanf:"file" yaml:"file"`
	MaxSize int    `koanf:"max_size" yaml:"max_size"`
}

// LogConfig controls diagnostic logging on stderr.
type LogConfig struct {
	Level  string `koanf:"level" yaml:"level"`
	Format string `koanf:"format" yaml:"format"`
}

// MetricsConfig controls the Prometheus textfile written at exit.
type MetricsConfig struct {
	Textfile string `koanf:"textfile" yaml:"textfile,omitempty"`
}

// ConnectionConfig stores saved connection details.
type ConnectionConfig struct {
	Host   string `koanf:"host" yaml:"host,omitempty"`
	Port   int    `koanf:"port" yaml:"port,omitempty"`
	Socket string `koanf:"socket" yaml:"socket,omitempty"`
}

// Default returns the default CLI configuration.
func Default() *CLIConfig {
	return &CLIConfig{
		Host: DefaultHost,
		Port: DefaultPort,
		History: HistoryConfig{
			File:    DefaultHistoryPath(),
			MaxSize: DefaultHistoryMaxSize,
		},
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
		Connections: make(map[string]ConnectionConfig),
	}
}

// Defaults returns Default as a flat map keyed by dotted path.
func Defaults() map[string]any {
	d := Default()
	return map[string]any{
		"host":             d.Host,
		"port":             d.Port,
		"timeout":          "0s",
		"history.file":     d.History.File,
		"history.max_size": d.History.MaxSize,
		"log.level":        d.Log.Level,
		"log.format":       d.Log.Format,
	}
}

// DefaultDir returns the per-user configuration directory.
func DefaultDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".respcli"
	}
	return filepath.Join(homeDir, ".respcli")
}

// DefaultConfigPath returns the default CLI config file path.
func DefaultConfigPath() string {
	return filepath.Join(DefaultDir(), "cli.yaml")
}

// DefaultHistoryPath returns the default REPL history file path.
func DefaultHistoryPath() string {
	return filepath.Join(DefaultDir(), "history")
}

// Validate checks the configuration for values the client cannot use.
func (c *CLIConfig) Validate() error {
	if c.Socket == "" && (c.Port <= 0 || c.Port > 65535) {
		return fmt.Errorf("%w: port %d out of range", ErrInvalidConfig, c.Port)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("%w: negative timeout %s", ErrInvalidConfig, c.Timeout)
	}
	if c.History.MaxSize < 0 {
		return fmt.Errorf("%w: negative history.max_size %d", ErrInvalidConfig, c.History.MaxSize)
	}
	if c.Output != "" {
		if _, err := output.ParseFormat(c.Output); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}
	for name, conn := range c.Connections {
		if conn.Socket == "" && conn.Host == "" {
			return fmt.Errorf("%w: connection %q has neither host nor socket", ErrInvalidConfig, name)
		}
	}
	return nil
}

// Target resolves the server to connect to. An empty name selects the
// top-level host, port and socket.
func (c *CLIConfig) Target(name string) (*connection.Connection, error) {
	if name == "" {
		return &connection.Connection{Host: c.Host, Port: c.Port, Socket: c.Socket}, nil
	}

	conn, ok := c.Connections[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownConnection, name)
	}
	port := conn.Port
	if port == 0 {
		port = DefaultPort
	}
	return &connection.Connection{Name: name, Host: conn.Host, Port: port, Socket: conn.Socket}, nil
}
