// Copyright (c) 2026 Mikhail Vasilenko.
// SPDX-License-Identifier: Apache-2.0

package snapshot

import (
	"context"
	"fmt"
	"time"

	"github.com/apex/log"
	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rds"
)

// WaitAvailable polls the snapshot until its status is "available",
// logging percent progress only when it changes. The poll cadence is the
// Service's poll interval; the caller bounds the wait through ctx.
func (s *Service) WaitAvailable(ctx context.Context, snapshotID string) error {
	var lastProgress int32 = -1

	for {
		out, err := s.api.DescribeDBSnapshots(ctx, &rds.DescribeDBSnapshotsInput{
			DBSnapshotIdentifier: awsv2.String(snapshotID),
		})
		if err != nil {
			return fmt.Errorf("describe snapshot %s: %w", snapshotID, err)
		}
		if len(out.DBSnapshots) == 0 {
			return fmt.Errorf("snapshot %s not found while waiting", snapshotID)
		}

		snap := out.DBSnapshots[0]
		if awsv2.ToString(snap.Status) == "available" {
			log.Infof("  Snapshot %s complete and available!", snapshotID)
			return nil
		}

		if progress := awsv2.ToInt32(snap.PercentProgress); progress != lastProgress {
			lastProgress = progress
			log.Infof("Snapshot %s in progress, %d%% complete", snapshotID, progress)
		}

		if err := sleep(ctx, s.pollInterval); err != nil {
			return fmt.Errorf("waiting for snapshot %s: %w", snapshotID, err)
		}
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
