package cli

import (
	"context"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/cybermatters/themis/pkg/cli/config"
	"github.com/cybermatters/themis/pkg/utils/logging"
)

func cmdSeed() *cli.Command {
	var catalogPath string
	var repoCfg config.Repository

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "catalog",
			Usage:       "Framework catalog TOML file (built-in catalog when omitted)",
			Sources:     cli.EnvVars("THEMIS_CATALOG"),
			Destination: &catalogPath,
		},
	}
	flags = append(flags, repoCfg.Flags()...)

	return &cli.Command{
		Name:  "seed",
		Usage: "Load the compliance framework catalog into the repository",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			catalog, err := config.LoadCatalog(catalogPath)
			if err != nil {
				return goerr.Wrap(err, "failed to load catalog")
			}

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			for _, framework := range catalog.Models() {
				if err := repo.Framework().Put(ctx, framework); err != nil {
					return goerr.Wrap(err, "failed to store framework", goerr.V("id", framework.ID))
				}
				color.Green("✓ %s (%s)", framework.Name, framework.ID)
			}

			color.Cyan("Seeded %d frameworks", len(catalog.Frameworks))
			return nil
		},
	}
}
