/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/implindex/pkg/server"
)

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:                  "serve",
		EnableShellCompletion: true,
		Usage:                 "Serve the implementor index over HTTP",
		Description: `Starts the API server. The index attaches when the server starts and
fragments can be published later with POST /v1/fragments.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "address",
				Usage: "Listen address (default: all interfaces)",
			},
			&cli.IntFlag{
				Name:    "port",
				Value:   8080,
				Usage:   "Listen port",
				Sources: cli.EnvVars(server.EnvPort),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg := server.NewConfig()
			cfg.Name = name
			cfg.Version = version
			cfg.Address = cmd.String("address")
			cfg.Port = int(cmd.Int("port"))

			return server.RunWithContext(ctx,
				server.WithConfig(cfg),
				server.WithBoard(boardFn()))
		},
	}
}
