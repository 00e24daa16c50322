// Copyright (c) 2026 Mikhail Vasilenko.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"time"

	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/mvasilenko/dr-rds-share-snapshot/internal/config"
	"github.com/mvasilenko/dr-rds-share-snapshot/internal/snapshot"
)

func init() {
	cfg, _ = config.Load()
}

var cfg config.Type

// NewGlobalFlags builds the flags shared by both commands. Every value can
// come from (in order) the explicit flag, the env var the original cron
// deployment exported, the command-namespaced config key, and the global
// config key.
func NewGlobalFlags(ns string) (flags []cli.Flag) {
	flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "region",
			Usage:   "AWS region to operate in",
			Sources: sources(ns, "region", "AWS_DEFAULT_REGION"),
		},
		&cli.StringFlag{
			Name:    "kms-key-arn",
			Usage:   "KMS key ARN used to encrypt snapshot copies",
			Sources: sources(ns, "kms-key-arn", "KMS_KEY_ARN"),
		},
		&cli.StringFlag{
			Name:    "pattern",
			Usage:   "regexp matched against DB instance identifiers, or ALL_INSTANCES; prefix with ! to negate",
			Sources: sources(ns, "pattern", "PATTERN"),
			Value:   snapshot.AllInstances,
		},
		&cli.StringFlag{
			Name:    "tagged-instance",
			Usage:   "when TRUE, only instances tagged CopyDBSnapshot=True are considered",
			Sources: sources(ns, "tagged-instance", "TAGGEDINSTANCE"),
			Value:   "FALSE",
		},
		&cli.IntFlag{
			Name:    "expected-count",
			Usage:   "number of snapshots a successful run must process",
			Sources: sources(ns, "expected-count", "EXPECTED_SNAPSHOT_COUNT"),
			Value:   4,
		},
		&cli.IntFlag{
			Name:    "interval",
			Usage:   "backup interval in hours (informational)",
			Sources: sources(ns, "interval", "INTERVAL"),
			Value:   24,
		},
		&cli.IntFlag{
			Name:    "keep",
			Usage:   "re-encrypted snapshots to retain per DB instance",
			Sources: sources(ns, "keep", ""),
			Value:   2,
		},
		&cli.StringFlag{
			Name:    "topic-arn",
			Usage:   "SNS topic for failure notifications",
			Sources: sources(ns, "topic-arn", "TOPIC_ARN"),
		},
		&cli.DurationFlag{
			Name:  "wait-timeout",
			Usage: "how long to wait for a single snapshot copy to become available",
			Value: defaultWaitTimeout(),
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format for the run report",
			Sources: sources(ns, "output", ""),
			Value:   "text",
			Validator: func(value string) error {
				return FlagValidators(value, OutputValidator)
			},
		},
		&cli.BoolFlag{
			Name:        "debug",
			Aliases:     []string{"d"},
			Usage:       "run in debug mode, do not send sns notifications",
			HideDefault: true,
		},
	}

	return
}

// defaultWaitTimeout reads the wait-timeout key from the config file
// (a Go duration string, e.g. "45m"). The altsrc YAML sources cannot feed
// a DurationFlag, so this one is resolved through the config getters.
func defaultWaitTimeout() time.Duration {
	if s, err := config.GetString("wait-timeout"); err == nil {
		if d, perr := time.ParseDuration(s); perr == nil {
			return d
		}
	}
	return 2 * time.Hour
}

// sources chains an env var with the namespaced and global config file keys
// for one flag.
func sources(ns, name, envVar string) cli.ValueSourceChain {
	chain := cli.NewValueSourceChain()
	if envVar != "" {
		chain.Chain = append(chain.Chain, cli.EnvVar(envVar))
	}
	if cfg.Source != "" {
		chain.Chain = append(chain.Chain,
			yaml.YAML(ns+"."+name, altsrc.StringSourcer(cfg.Source)),
			yaml.YAML(name, altsrc.StringSourcer(cfg.Source)),
		)
	}
	return chain
}
