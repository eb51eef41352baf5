package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/logbarron/guestgate/cmd/app/commands"
	"github.com/logbarron/guestgate/internal/app"
	"github.com/logbarron/guestgate/internal/config"
)

func getSystemCommands(version string) []*cli.Command {
	return []*cli.Command{
		{
			Name:  "server",
			Usage: "Start the HTTP server",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunServer(ctx, version)
			},
		},
		{
			Name:  "migrate",
			Usage: "Run database migrations",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)

				return commands.RunMigrations(container.Logger(), cfg.DBDriver, cfg.DBConnectionString)
			},
		},
		{
			Name:  "clean-expired",
			Usage: "Delete expired magic links, sessions, stale rate limit buckets and old audit events",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:    "stale-hours",
					Aliases: []string{"s"},
					Value:   24,
					Usage:   "Delete rate limit buckets idle for more than this many hours",
				},
				&cli.IntFlag{
					Name:    "retention-days",
					Aliases: []string{"r"},
					Value:   90,
					Usage:   "Delete audit events older than this many days",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Close() }()

				cleanupUseCase, err := container.CleanupUseCase()
				if err != nil {
					return err
				}

				return commands.RunCleanExpired(
					ctx,
					cleanupUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					int(cmd.Int("stale-hours")),
					int(cmd.Int("retention-days")),
					cmd.String("format"),
				)
			},
		},
	}
}
