// Copyright (c) 2026 Mikhail Vasilenko.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"os"

	"github.com/apex/log"
	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rds/types"
	"github.com/urfave/cli/v3"

	myaws "github.com/mvasilenko/dr-rds-share-snapshot/internal/aws"
	"github.com/mvasilenko/dr-rds-share-snapshot/internal/config"
	"github.com/mvasilenko/dr-rds-share-snapshot/internal/meta"
	"github.com/mvasilenko/dr-rds-share-snapshot/internal/output"
	"github.com/mvasilenko/dr-rds-share-snapshot/internal/snapshot"
)

// ShareCommandAction runs in the source account: it re-encrypts the latest
// automated snapshot of every matching DB instance with the DR KMS key,
// shares the copy with the target account, and prunes old copies.
func ShareCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	config.Config.Namespace = "share"

	targetAccount := cmd.String("target-account")
	if !myaws.ValidAccountID(targetAccount) {
		return cli.Exit("TARGET_ACCOUNT environment variable must be set to target AWS account id", 1)
	}

	svc, notifier, err := commonSetup(ctx, cmd)
	if err != nil {
		return err
	}

	filter, err := snapshot.NewFilter(cmd.String("pattern"), taggedOnly(cmd))
	if err != nil {
		// Misconfiguration, not an API failure: exit 1 like the other
		// validation paths.
		return cli.Exit(err.Error(), 1)
	}

	instances, err := svc.Instances(ctx, filter)
	if err != nil {
		return err
	}
	if len(instances) > 0 {
		ids := identifiers(instances, func(i types.DBInstance) *string { return i.DBInstanceIdentifier })
		log.Infof("Starting snapshot sharing for DB instances: %v", ids)
	} else {
		log.Warnf("DB instances list for sharing is empty, matching pattern env var: PATTERN=%s", filter.Pattern())
	}

	kmsKeyARN := cmd.String("kms-key-arn")
	keep := int(cmd.Int("keep"))
	waitTimeout := cmd.Duration("wait-timeout")

	var rows []output.Row
	readyCount := 0
	for _, inst := range instances {
		dbID := awsv2.ToString(inst.DBInstanceIdentifier)

		latest, err := svc.LatestAutomated(ctx, dbID)
		if err != nil {
			return err
		}
		if latest == nil {
			continue
		}

		recrypted, err := svc.Recrypt(ctx, *latest, kmsKeyARN)
		if err != nil {
			return err
		}

		recryptedID := awsv2.ToString(recrypted.DBSnapshotIdentifier)
		wctx, cancel := context.WithTimeout(ctx, waitTimeout)
		err = svc.WaitAvailable(wctx, recryptedID)
		cancel()
		if err != nil {
			return err
		}

		if err := svc.Share(ctx, recryptedID, targetAccount); err != nil {
			return err
		}
		readyCount++
		recrypted.Status = awsv2.String("available")
		rows = append(rows, output.NewRow(recrypted))

		// Clean up old snapshots recrypted with the key from the backup
		// account.
		if _, err := svc.PruneRecrypted(ctx, dbID, keep); err != nil {
			return err
		}
	}

	expected := int(cmd.Int("expected-count"))
	report := output.Report{
		Command:  "share",
		Expected: expected,
		Ready:    readyCount,
		Rows:     rows,
	}
	if err := output.Spit(os.Stdout, cmd.String("output"), report); err != nil {
		return err
	}

	if readyCount != expected {
		subject, message := shareCountMismatch(expected, readyCount)
		return notifyCountMismatch(ctx, notifier, subject, message)
	}

	log.Info("Snapshot sharing completed successfully, exiting")
	return nil
}

// ShareCommandBuilder constructs the cli.Command for "share", wiring
// metadata, flags, and action/validator handlers.
func ShareCommandBuilder(app *cli.Command, m meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "share",
		Usage:     "re-encrypt and share RDS snapshots with the backup account",
		UsageText: `dr-rds-share-snapshot share [options]`,
		Metadata: map[string]any{
			"meta": m,
		},
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:    "target-account",
				Usage:   "AWS account id the snapshots are shared with",
				Sources: sources("share", "target-account", "TARGET_ACCOUNT"),
			},
		}, NewGlobalFlags("share")...),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if err := ShareCommandValidator(ctx, cmd); err != nil {
				return err
			}
			return ShareCommandAction(ctx, cmd)
		},
	}
}

// ShareCommandValidator performs validation for "share" and delegates to
// GlobalFlagsValidator.
func ShareCommandValidator(ctx context.Context, cmd *cli.Command) error {
	return GlobalFlagsValidator(ctx, cmd)
}
