package command

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/respcli/internal/cli/config"
)

// SettingsCommand returns the settings subcommand group. It manages the
// local config file; it is not named config so that CONFIG stays
// available as a server command in one-shot mode.
func SettingsCommand() *cli.Command {
	return &cli.Command{
		Name:  "settings",
		Usage: "Local configuration management",
		Subcommands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Show the effective configuration",
				Action: settingsShow,
			},
			{
				Name:  "init",
				Usage: "Write a config file with default settings",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "force",
						Usage: "Overwrite an existing file",
					},
				},
				Action: settingsInit,
			},
			{
				Name:      "use",
				Usage:     "Switch to a saved connection",
				ArgsUsage: "CONNECTION_NAME",
				Action:    settingsUse,
			},
		},
	}
}

func settingsShow(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"), configOverrides(c))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	data, err := config.Marshal(cfg)
	if err != nil {
		return err
	}

	path := config.ResolvePath(c.String("config"))
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(c.App.Writer, "# %s (not found, showing defaults)\n", path)
	} else {
		fmt.Fprintf(c.App.Writer, "# %s\n", path)
	}
	_, err = c.App.Writer.Write(data)
	return err
}

func settingsInit(c *cli.Context) error {
	path := config.ResolvePath(c.String("config"))

	if _, err := os.Stat(path); err == nil && !c.Bool("force") {
		return cli.Exit(fmt.Sprintf("%s already exists (use --force to overwrite)", path), 1)
	}

	if err := config.Save(config.Default(), path); err != nil {
		return cli.Exit(fmt.Sprintf("write config: %v", err), 1)
	}
	fmt.Fprintf(c.App.Writer, "Wrote %s\n", path)
	return nil
}

func settingsUse(c *cli.Context) error {
	name := c.Args().First()
	if name == "" {
		return cli.Exit("connection name required", 1)
	}

	path := c.String("config")
	cfg, err := config.Load(path, nil)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	if _, err := cfg.Target(name); err != nil {
		return cli.Exit(err.Error(), 1)
	}

	cfg.CurrentConnection = name
	if err := config.Save(cfg, path); err != nil {
		return cli.Exit(fmt.Sprintf("write config: %v", err), 1)
	}
	fmt.Fprintf(c.App.Writer, "Switched to connection %q\n", name)
	return nil
}
