// Copyright (c) 2026 Mikhail Vasilenko.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"sort"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/mvasilenko/dr-rds-share-snapshot/internal/config"
	"github.com/mvasilenko/dr-rds-share-snapshot/internal/meta"
)

func InitApp(ctx context.Context, args []string) (*cli.Command, error) {

	// The arg[1] immediately following the binary (arg[0]) is the subcommand
	// and also represents the namespace key to be used when retrieving config
	// values. arg[1] could be -h/--help, so ignore it if it appears to be a
	// flag.
	var ns string
	if len(args) > 1 && !strings.HasPrefix(args[1], "-") {
		ns = args[1]
	}

	cfg, _ := config.Load()
	config.Config.Namespace = ns

	m := meta.Meta{
		Args:    args,
		Config:  cfg,
		Context: ctx,
	}

	app := &cli.Command{
		Name:  "dr-rds-share-snapshot",
		Usage: "cross-account RDS snapshot disaster recovery",
		// Exit codes are decided in main, not by the cli package.
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "version",
				Aliases:     []string{"v"},
				Usage:       "version info",
				HideDefault: true,
			},
		},
	}

	app.Commands = append(app.Commands,
		ShareCommandBuilder(app, m),
		CopyCommandBuilder(app, m),
	)

	// Make sure flags are sorted for the --help text.
	for _, cmd := range app.Commands {
		sort.Slice(cmd.Flags, func(i, j int) bool {
			return cmd.Flags[i].Names()[0] < cmd.Flags[j].Names()[0]
		})
	}

	return app, nil
}
