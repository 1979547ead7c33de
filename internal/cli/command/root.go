package command

import (
	"github.com/urfave/cli/v2"

	"github.com/yndnr/respcli/internal/cli/config"
	"github.com/yndnr/respcli/internal/cli/output"
	"github.com/yndnr/respcli/internal/infra/buildinfo"
)

// App creates the CLI application.
func App() *cli.App {
	// -h is the host flag; help is long form only.
	cli.HelpFlag = &cli.BoolFlag{
		Name:  "help",
		Usage: "show help",
	}

	return &cli.App{
		Name:            "resp-cli",
		Usage:           "Interactive client for RESP servers",
		UsageText:       "resp-cli [options] [command [arg ...]]",
		Version:         buildinfo.String(),
		Flags:           globalFlags(),
		HideHelpCommand: true,
		Commands: []*cli.Command{
			SettingsCommand(),
		},
		Action: run,
	}
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "host",
			Aliases: []string{"h"},
			Usage:   "Server hostname",
			Value:   config.DefaultHost,
		},
		&cli.IntFlag{
			Name:    "port",
			Aliases: []string{"p"},
			Usage:   "Server port",
			Value:   config.DefaultPort,
		},
		&cli.StringFlag{
			Name:    "socket",
			Aliases: []string{"s"},
			Usage:   "Server unix socket (overrides host and port)",
		},
		&cli.StringFlag{
			Name:    "connection",
			Aliases: []string{"C"},
			Usage:   "Saved connection `NAME` from the config file",
		},
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Config file `PATH` (default ~/.respcli/cli.yaml)",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output format: text, raw, json, yaml, msgpack",
		},
		&cli.BoolFlag{
			Name:  "raw",
			Usage: "Use raw output (same as --output raw)",
		},
		&cli.IntFlag{
			Name:    "repeat",
			Aliases: []string{"r"},
			Usage:   "Execute the command `N` times (negative repeats forever)",
			Value:   1,
		},
		&cli.Float64Flag{
			Name:    "interval",
			Aliases: []string{"i"},
			Usage:   "Wait `SECONDS` between repeated commands",
		},
		&cli.DurationFlag{
			Name:  "timeout",
			Usage: "Per-command timeout (0 waits forever)",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "Diagnostic log level: debug, info, warn, error",
		},
		&cli.StringFlag{
			Name:  "metrics-textfile",
			Usage: "Write Prometheus metrics to `PATH` at exit",
		},
		&cli.BoolFlag{
			Name:  "no-history",
			Usage: "Do not read or write the REPL history file",
		},
	}
}

// configOverrides returns the explicitly set flags as config keys, so
// they take priority over the file and environment.
func configOverrides(c *cli.Context) map[string]any {
	m := make(map[string]any)
	if c.IsSet("host") {
		m["host"] = c.String("host")
	}
	if c.IsSet("port") {
		m["port"] = c.Int("port")
	}
	if c.IsSet("socket") {
		m["socket"] = c.String("socket")
	}
	if c.IsSet("timeout") {
		m["timeout"] = c.Duration("timeout")
	}
	if c.IsSet("output") {
		m["output"] = c.String("output")
	}
	if c.Bool("raw") {
		m["output"] = string(output.FormatRaw)
	}
	if c.IsSet("log-level") {
		m["log.level"] = c.String("log-level")
	}
	if c.IsSet("metrics-textfile") {
		m["metrics.textfile"] = c.String("metrics-textfile")
	}
	if c.Bool("no-history") {
		m["history.max_size"] = 0
	}
	return m
}

// run is the root action: one-shot mode with arguments, REPL without.
func run(c *cli.Context) error {
	s, err := newSession(c)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	defer s.close()

	if c.Args().Present() {
		return s.runOneShot(c.Context, c.Args().Slice(), c.Int("repeat"), c.Float64("interval"))
	}
	return s.runInteractive(c.Context)
}
