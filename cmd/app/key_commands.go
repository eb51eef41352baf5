package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/logbarron/guestgate/cmd/app/commands"
)

func getKeyCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "create-root-key",
			Usage: "Generate a new root key for record envelope encryption",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "id",
					Aliases: []string{"i"},
					Value:   "",
					Usage:   "Root key ID (e.g., prod-root-key-2026)",
				},
				&cli.StringFlag{
					Name:    "kms-key-uri",
					Aliases: []string{"k"},
					Value:   "",
					Usage:   "KMS keeper URI used to wrap the key (omit to print plaintext for dev)",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunCreateRootKey(
					ctx,
					commands.DefaultIO().Writer,
					cmd.String("id"),
					cmd.String("kms-key-uri"),
				)
			},
		},
		{
			Name:  "create-hash-secret",
			Usage: "Generate a new keyed-hash secret for emails and tokens",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunCreateHashSecret(commands.DefaultIO().Writer)
			},
		},
	}
}
