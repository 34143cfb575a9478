/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/implindex/pkg/fragment"
	"github.com/NVIDIA/implindex/pkg/index"
	"github.com/NVIDIA/implindex/pkg/serializer"
)

func listCmd() *cli.Command {
	return &cli.Command{
		Name:                  "list",
		EnableShellCompletion: true,
		Usage:                 "Print the implementor index",
		Description: `Publishes fragment sources on top of the tables compiled into the binary,
attaches the index and prints it.

Examples:
  implindex list --format table
  implindex list -f implementors/num/trait.Num.js -f extra.yaml --trait num::Num`,
		Flags: []cli.Flag{
			fragmentFlag,
			&cli.StringFlag{
				Name:  "trait",
				Usage: "Print a single trait page",
			},
			outputFlag,
			formatFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			board := boardFn()

			frags, err := fragment.LoadAll(ctx, cmd.StringSlice("fragment"))
			if err != nil {
				return fmt.Errorf("failed to load fragments: %w", err)
			}
			for _, f := range frags {
				p, err := f.PublishTo(board)
				if err != nil {
					return err
				}
				slog.Debug("fragment published", "trait", f.Trait, "state", p.State().String())
			}

			x := index.New(index.WithVersion(version))
			if err := x.AttachAll(board); err != nil {
				return fmt.Errorf("failed to attach index: %w", err)
			}

			var doc any = x.Snapshot()
			if trait := cmd.String("trait"); trait != "" {
				if doc, err = x.PageSnapshot(trait); err != nil {
					return err
				}
			}

			ser := serializer.NewFileWriterOrStdout(outFormat, cmd.String("output"))
			defer func() {
				if err := ser.Close(); err != nil {
					slog.Warn("failed to close serializer", "error", err)
				}
			}()

			return ser.Serialize(ctx, doc)
		},
	}
}
