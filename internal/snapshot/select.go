// Copyright (c) 2026 Mikhail Vasilenko.
// SPDX-License-Identifier: Apache-2.0

package snapshot

import (
	"context"
	"fmt"
	"strings"

	"github.com/apex/log"
	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rds"
	"github.com/aws/aws-sdk-go-v2/service/rds/types"
)

// LatestAutomated returns the most recent automated snapshot for the given
// DB instance, or nil when the instance has none. There is no API to query
// for the latest snapshot directly, so the full list is scanned. Snapshots
// still being created have no SnapshotCreateTime and never win a comparison.
func (s *Service) LatestAutomated(ctx context.Context, dbID string) (*types.DBSnapshot, error) {
	log.Debugf("Getting latest (automated) snapshot from rds instance %s...", dbID)

	snaps, err := s.listSnapshots(ctx, &rds.DescribeDBSnapshotsInput{
		DBInstanceIdentifier: awsv2.String(dbID),
		SnapshotType:         awsv2.String("automated"),
	})
	if err != nil {
		return nil, err
	}

	var latest *types.DBSnapshot
	for i := range snaps {
		snap := &snaps[i]
		if latest == nil {
			latest = snap
			continue
		}
		if snap.SnapshotCreateTime == nil || latest.SnapshotCreateTime == nil {
			continue
		}
		if snap.SnapshotCreateTime.After(*latest.SnapshotCreateTime) {
			latest = snap
		}
	}

	if latest != nil {
		log.Debugf("  Found snapshot %s", awsv2.ToString(latest.DBSnapshotIdentifier))
	} else {
		log.Infof("  No snapshots found for instance %s", dbID)
	}
	return latest, nil
}

// oldestManualContaining returns the oldest manual snapshot of dbID whose
// identifier contains substr, or nil when there is none.
func (s *Service) oldestManualContaining(ctx context.Context, dbID, substr string) (*types.DBSnapshot, error) {
	snaps, err := s.listSnapshots(ctx, &rds.DescribeDBSnapshotsInput{
		DBInstanceIdentifier: awsv2.String(dbID),
		SnapshotType:         awsv2.String("manual"),
	})
	if err != nil {
		return nil, err
	}

	var oldest *types.DBSnapshot
	for i := range snaps {
		snap := &snaps[i]
		if !strings.Contains(awsv2.ToString(snap.DBSnapshotIdentifier), substr) {
			continue
		}
		if oldest == nil {
			oldest = snap
			continue
		}
		if snap.SnapshotCreateTime == nil || oldest.SnapshotCreateTime == nil {
			continue
		}
		if snap.SnapshotCreateTime.Before(*oldest.SnapshotCreateTime) {
			oldest = snap
		}
	}

	return oldest, nil
}

// countManualContaining counts manual snapshots of dbID whose identifier
// contains substr. Shared snapshots are never included, so this counts only
// what the account owns.
func (s *Service) countManualContaining(ctx context.Context, dbID, substr string) (int, error) {
	snaps, err := s.listSnapshots(ctx, &rds.DescribeDBSnapshotsInput{
		DBInstanceIdentifier: awsv2.String(dbID),
		SnapshotType:         awsv2.String("manual"),
	})
	if err != nil {
		return 0, err
	}

	count := 0
	for _, snap := range snaps {
		if strings.Contains(awsv2.ToString(snap.DBSnapshotIdentifier), substr) {
			count++
		}
	}
	log.Debugf("  Found %d manual snapshot(s) matching %q for DB instance %s", count, substr, dbID)
	return count, nil
}

func (s *Service) listSnapshots(ctx context.Context, input *rds.DescribeDBSnapshotsInput) ([]types.DBSnapshot, error) {
	var snaps []types.DBSnapshot

	p := rds.NewDescribeDBSnapshotsPaginator(s.api, input)
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("describe db snapshots: %w", err)
		}
		snaps = append(snaps, page.DBSnapshots...)
	}

	return snaps, nil
}
