// Copyright (c) 2026 Mikhail Vasilenko.
// SPDX-License-Identifier: Apache-2.0

package snapshot

import (
	"context"
	"errors"
	"fmt"

	"github.com/apex/log"
	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rds"
	"github.com/aws/aws-sdk-go-v2/service/rds/types"
)

// Recrypt copies an automated snapshot into a manual snapshot encrypted
// with the DR KMS key (which must also be shared with the target account).
// If a previous run already made the copy, the existing snapshot is
// retrieved and reused.
func (s *Service) Recrypt(ctx context.Context, snap types.DBSnapshot, kmsKeyARN string) (types.DBSnapshot, error) {
	sourceID := awsv2.ToString(snap.DBSnapshotIdentifier)
	targetID := RecryptTargetID(sourceID)

	log.Infof("Copying automatic snapshot %s to manual snapshot", sourceID)

	return s.copySnapshot(ctx, sourceID, targetID, kmsKeyARN)
}

// CopySharedToLocal copies a snapshot shared by another account into a
// local manual snapshot. An RDS instance cannot be restored directly from a
// shared snapshot, so an account-local copy is required first.
func (s *Service) CopySharedToLocal(ctx context.Context, shared types.DBSnapshot, kmsKeyARN string) (types.DBSnapshot, error) {
	sourceARN := awsv2.ToString(shared.DBSnapshotArn)
	sharedID := awsv2.ToString(shared.DBSnapshotIdentifier)
	targetID := LocalCopyID(sharedID)

	log.Infof("Copying shared snapshot %s to local snapshot %s...", sourceARN, targetID)

	return s.copySnapshot(ctx, sourceARN, targetID, kmsKeyARN)
}

func (s *Service) copySnapshot(ctx context.Context, sourceID, targetID, kmsKeyARN string) (types.DBSnapshot, error) {
	out, err := s.api.CopyDBSnapshot(ctx, &rds.CopyDBSnapshotInput{
		SourceDBSnapshotIdentifier: awsv2.String(sourceID),
		TargetDBSnapshotIdentifier: awsv2.String(targetID),
		KmsKeyId:                   awsv2.String(kmsKeyARN),
	})
	if err == nil {
		log.Infof("  Snapshot %s created", targetID)
		return *out.DBSnapshot, nil
	}

	var exists *types.DBSnapshotAlreadyExistsFault
	if !errors.As(err, &exists) {
		return types.DBSnapshot{}, fmt.Errorf("copy snapshot %s to %s: %w", sourceID, targetID, err)
	}

	// A previous run got this far already; pick up its copy.
	log.Infof("Snapshot already exists, retrieving %s", targetID)
	snaps, err := s.listSnapshots(ctx, &rds.DescribeDBSnapshotsInput{
		DBSnapshotIdentifier: awsv2.String(targetID),
	})
	if err != nil {
		return types.DBSnapshot{}, err
	}
	if len(snaps) == 0 {
		return types.DBSnapshot{}, fmt.Errorf("snapshot %s reported as existing but not found", targetID)
	}
	return snaps[0], nil
}

// Share grants the target account restore access to the snapshot. A
// snapshot must be shared before it can be copied from the other account.
func (s *Service) Share(ctx context.Context, snapshotID, targetAccount string) error {
	log.Infof("Modifying snapshot %s to be shared with account %s...", snapshotID, targetAccount)

	_, err := s.api.ModifyDBSnapshotAttribute(ctx, &rds.ModifyDBSnapshotAttributeInput{
		DBSnapshotIdentifier: awsv2.String(snapshotID),
		AttributeName:        awsv2.String("restore"),
		ValuesToAdd:          []string{targetAccount},
	})
	if err != nil {
		return fmt.Errorf("share snapshot %s with %s: %w", snapshotID, targetAccount, err)
	}

	log.Infof("  Modified snapshot %s", snapshotID)
	return nil
}
