package command

import (
	"github.com/urfave/cli/v2"

	"github.com/yndnr/respcli/internal/cli/config"
	"github.com/yndnr/respcli/internal/cli/connection"
)

// resolveTarget picks the server for the session. --connection names a
// saved connection. Without it, explicit --host, --port or --socket flags
// win over current_connection from the config file.
func resolveTarget(c *cli.Context, cfg *config.CLIConfig) (*connection.Connection, error) {
	return cfg.Target(connectionName(c, cfg))
}

func connectionName(c *cli.Context, cfg *config.CLIConfig) string {
	if name := c.String("connection"); name != "" {
		return name
	}
	if c.IsSet("host") || c.IsSet("port") || c.IsSet("socket") {
		return ""
	}
	return cfg.CurrentConnection
}
