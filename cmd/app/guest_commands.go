package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/logbarron/guestgate/cmd/app/commands"
	"github.com/logbarron/guestgate/internal/app"
	"github.com/logbarron/guestgate/internal/config"
)

func getGuestCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "issue-link",
			Usage: "Issue a magic link for a guest",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "guest-id",
					Aliases:  []string{"g"},
					Required: true,
					Usage:    "Guest ID (UUID)",
				},
				&cli.StringFlag{
					Name:     "email",
					Aliases:  []string{"e"},
					Required: true,
					Usage:    "Guest email address the link is bound to",
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

				magicLinkUseCase, err := container.MagicLinkUseCase()
				if err != nil {
					return err
				}

				return commands.RunIssueLink(
					ctx,
					magicLinkUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("guest-id"),
					cmd.String("email"),
					cmd.String("format"),
				)
			},
		},
	}
}
