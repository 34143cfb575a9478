/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/implindex/pkg/fragment"
	"github.com/NVIDIA/implindex/pkg/serializer"
)

const formatScript = "script"

func renderCmd() *cli.Command {
	return &cli.Command{
		Name:                  "render",
		EnableShellCompletion: true,
		Usage:                 "Convert a fragment between script, JSON and YAML",
		Description: `Loads one fragment and writes it back out. The script format is the
generated implementors file that registers itself with the page, or parks
the table until the page is ready.

Examples:
  implindex render -f num.yaml -o implementors/num/trait.Num.js
  implindex render -f implementors/num/trait.Num.js --format json`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "fragment",
				Aliases:  []string{"f"},
				Required: true,
				Usage:    "Fragment source: path or http(s) URL",
			},
			&cli.StringFlag{
				Name:  "trait",
				Usage: "Trait path for sources that do not carry one (e.g. num::Num)",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"t"},
				Value:   formatScript,
				Usage:   "Output format (supported values: script, json, yaml)",
			},
			outputFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat := cmd.String("format")
			if outFormat != formatScript && serializer.Format(outFormat) != serializer.FormatJSON &&
				serializer.Format(outFormat) != serializer.FormatYAML {
				return fmt.Errorf("unknown output format: %q (supported: script, json, yaml)", outFormat)
			}

			var opts []fragment.LoadOption
			if trait := cmd.String("trait"); trait != "" {
				opts = append(opts, fragment.WithTrait(trait))
			}
			f, err := fragment.Load(ctx, cmd.String("fragment"), opts...)
			if err != nil {
				return err
			}

			if outFormat != formatScript {
				ser := serializer.NewFileWriterOrStdout(serializer.Format(outFormat), cmd.String("output"))
				defer func() {
					if err := ser.Close(); err != nil {
						slog.Warn("failed to close serializer", "error", err)
					}
				}()
				return ser.Serialize(ctx, f)
			}

			w, closeFn, err := openOutput(cmd.String("output"))
			if err != nil {
				return err
			}
			defer closeFn()
			return fragment.WriteScript(w, f)
		},
	}
}

// openOutput returns stdout for an empty path, the created file otherwise.
func openOutput(path string) (io.Writer, func(), error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	return file, func() {
		if err := file.Close(); err != nil {
			slog.Warn("failed to close output file", "path", path, "error", err)
		}
	}, nil
}
