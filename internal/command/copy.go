// Copyright (c) 2026 Mikhail Vasilenko.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"os"

	"github.com/apex/log"
	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/urfave/cli/v3"

	"github.com/mvasilenko/dr-rds-share-snapshot/internal/config"
	"github.com/mvasilenko/dr-rds-share-snapshot/internal/meta"
	"github.com/mvasilenko/dr-rds-share-snapshot/internal/output"
)

// CopyCommandAction runs in the destination account: it copies every
// re-encrypted snapshot shared into the account to a local snapshot under
// the local KMS key, then prunes old local copies.
func CopyCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	config.Config.Namespace = "copy"

	svc, notifier, err := commonSetup(ctx, cmd)
	if err != nil {
		return err
	}

	shared, total, err := svc.SharedRecrypted(ctx)
	if err != nil {
		return err
	}
	if total == 0 {
		return cli.Exit("Unable to find snapshots, shared with current account, exiting", 1)
	}

	kmsKeyARN := cmd.String("kms-key-arn")
	keep := int(cmd.Int("keep"))
	waitTimeout := cmd.Duration("wait-timeout")

	var rows []output.Row
	readyCount := 0
	copiedPerInstance := map[string]int{}
	for _, snap := range shared {
		local, err := svc.CopySharedToLocal(ctx, snap, kmsKeyARN)
		if err != nil {
			return err
		}

		localID := awsv2.ToString(local.DBSnapshotIdentifier)
		wctx, cancel := context.WithTimeout(ctx, waitTimeout)
		err = svc.WaitAvailable(wctx, localID)
		cancel()
		if err != nil {
			return err
		}
		readyCount++
		local.Status = awsv2.String("available")
		rows = append(rows, output.NewRow(local))

		copiedPerInstance[awsv2.ToString(snap.DBInstanceIdentifier)]++
	}

	for dbID := range copiedPerInstance {
		if _, err := svc.PruneLocalCopies(ctx, dbID, keep); err != nil {
			return err
		}
	}

	expected := int(cmd.Int("expected-count"))
	report := output.Report{
		Command:  "copy",
		Expected: expected,
		Ready:    readyCount,
		Rows:     rows,
	}
	if err := output.Spit(os.Stdout, cmd.String("output"), report); err != nil {
		return err
	}

	if readyCount != expected {
		subject, message := copyCountMismatch(expected, readyCount)
		return notifyCountMismatch(ctx, notifier, subject, message)
	}

	log.Info("Shared RDS snapshot copying completed successfully, exiting")
	return nil
}

// CopyCommandBuilder constructs the cli.Command for "copy", wiring
// metadata, flags, and action/validator handlers.
func CopyCommandBuilder(app *cli.Command, m meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "copy",
		Usage:     "copy snapshots shared into this account to local snapshots",
		UsageText: `dr-rds-share-snapshot copy [options]`,
		Metadata: map[string]any{
			"meta": m,
		},
		Flags: NewGlobalFlags("copy"),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if err := CopyCommandValidator(ctx, cmd); err != nil {
				return err
			}
			return CopyCommandAction(ctx, cmd)
		},
	}
}

// CopyCommandValidator performs validation for "copy" and delegates to
// GlobalFlagsValidator.
func CopyCommandValidator(ctx context.Context, cmd *cli.Command) error {
	return GlobalFlagsValidator(ctx, cmd)
}
