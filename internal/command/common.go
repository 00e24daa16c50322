// Copyright (c) 2026 Mikhail Vasilenko.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/apex/log"
	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/urfave/cli/v3"

	myaws "github.com/mvasilenko/dr-rds-share-snapshot/internal/aws"
	"github.com/mvasilenko/dr-rds-share-snapshot/internal/config"
	"github.com/mvasilenko/dr-rds-share-snapshot/internal/meta"
	"github.com/mvasilenko/dr-rds-share-snapshot/internal/notify"
	"github.com/mvasilenko/dr-rds-share-snapshot/internal/snapshot"
)

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// commonSetup validates the flags both commands need and builds the AWS
// clients from them. Validation failures return a cli.Exit error with
// code 1 so cron wrappers keep seeing exit 1 on misconfiguration.
func commonSetup(ctx context.Context, cmd *cli.Command) (*snapshot.Service, *notify.Notifier, error) {
	region := cmd.String("region")
	if region == "" {
		return nil, nil, cli.Exit("Please set the environment variable AWS_DEFAULT_REGION", 1)
	}

	if !myaws.ValidKMSKeyARN(cmd.String("kms-key-arn")) {
		return nil, nil, cli.Exit(
			"KMS_KEY_ARN environment variable must be set to KMS key AWS arn, like arn:aws:kms:<region>:<account_id>:key/<key_id>", 1)
	}

	debug := cmd.Bool("debug")
	topicARN := cmd.String("topic-arn")
	if topicARN == "" && !debug {
		return nil, nil, cli.Exit("Unable to read TOPIC_ARN environment variable", 1)
	}

	awsCfg, err := myaws.LoadAWSConfig(ctx, myaws.WithRegion(region))
	if err != nil {
		return nil, nil, err
	}

	// Config-only tuning knob: how often the waiter polls, in seconds.
	// There is no flag for it; 10s matches the RDS console cadence and
	// only tests and unusual deployments change it.
	pollSecs, _ := config.GetInt("poll-interval", 10)
	svc := snapshot.NewService(myaws.NewRDS(awsCfg),
		snapshot.WithPollInterval(time.Duration(pollSecs)*time.Second))

	notifier := notify.Discard()
	if !debug {
		notifier = notify.New(myaws.NewSNS(awsCfg), topicARN)
	}

	log.Debugf("backup interval: %dh", cmd.Int("interval"))

	return svc, notifier, nil
}

// taggedOnly interprets the TAGGEDINSTANCE-style flag value.
func taggedOnly(cmd *cli.Command) bool {
	return strings.EqualFold(cmd.String("tagged-instance"), "TRUE")
}

const (
	shareMismatchSubject = "DR: source account take shared RDS snapshot error"
	copyMismatchSubject  = "DR: dst account copy RDS shared snapshot error"
)

// shareCountMismatch builds the notification for a share run that
// processed a different number of snapshots than expected. Monitoring
// matches on the COPY_RDS_SNAPSHOT_COUNT_ERROR token, so the wording is
// load-bearing.
func shareCountMismatch(expected, ready int) (subject, message string) {
	return shareMismatchSubject, fmt.Sprintf(
		"COPY_RDS_SNAPSHOT_COUNT_ERROR sharing RDS snapshots completed with error: "+
			"Expected snapshot count=%d not equal to actual snapshot count=%d, exiting",
		expected, ready)
}

// copyCountMismatch is the copy-side counterpart of shareCountMismatch.
func copyCountMismatch(expected, ready int) (subject, message string) {
	return copyMismatchSubject, fmt.Sprintf(
		"COPY_RDS_SNAPSHOT_COUNT_ERROR Shared RDS snapshot copying completed with error: "+
			"Expected snapshot count=%d not equal to actual snapshot count=%d, exiting",
		expected, ready)
}

// notifyCountMismatch logs the failure, best-effort publishes it, and
// returns the exit-1 error for the action to propagate.
func notifyCountMismatch(ctx context.Context, notifier *notify.Notifier, subject, message string) error {
	log.Error(message)
	if err := notifier.Publish(ctx, subject, message); err != nil {
		log.Errorf("failed to publish notification: %v", err)
	}
	return cli.Exit(message, 1)
}

// identifiers extracts DB instance identifiers for logging.
func identifiers[T any](items []T, id func(T) *string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, awsv2.ToString(id(item)))
	}
	return out
}
