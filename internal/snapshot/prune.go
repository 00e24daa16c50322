// Copyright (c) 2026 Mikhail Vasilenko.
// SPDX-License-Identifier: Apache-2.0

package snapshot

import (
	"context"
	"fmt"

	"github.com/apex/log"
	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rds"
)

// PruneRecrypted deletes the oldest re-encrypted manual snapshots of dbID
// until at most keep remain. Used in the source account after sharing a
// fresh copy. Returns the number of snapshots deleted.
func (s *Service) PruneRecrypted(ctx context.Context, dbID string, keep int) (int, error) {
	return s.prune(ctx, dbID, recryptedSuffixBare, keep)
}

// PruneLocalCopies deletes the oldest re-encrypted snapshots of dbID until
// the account owns at most keep local copies. Used in the destination
// account; the count looks at "recrypted-copy" identifiers while deletion
// picks the oldest "recrypted" snapshot, matching how copies accumulate
// there.
func (s *Service) PruneLocalCopies(ctx context.Context, dbID string, keep int) (int, error) {
	return s.prune(ctx, dbID, recryptedSuffixBare+localCopySuffix, keep)
}

// recryptedSuffixBare is the suffix without its leading dash, used for
// substring counting where older snapshots may predate the dash convention.
const recryptedSuffixBare = "recrypted"

func (s *Service) prune(ctx context.Context, dbID, countSubstr string, keep int) (int, error) {
	deleted := 0
	for {
		count, err := s.countManualContaining(ctx, dbID, countSubstr)
		if err != nil {
			return deleted, err
		}
		if count <= keep {
			return deleted, nil
		}

		oldest, err := s.oldestManualContaining(ctx, dbID, recryptedSuffixBare)
		if err != nil {
			return deleted, err
		}
		if oldest == nil {
			return deleted, nil
		}

		oldestID := awsv2.ToString(oldest.DBSnapshotIdentifier)
		log.Infof("Deleting oldest recrypted manual snapshot %s", oldestID)
		if _, err := s.api.DeleteDBSnapshot(ctx, &rds.DeleteDBSnapshotInput{
			DBSnapshotIdentifier: awsv2.String(oldestID),
		}); err != nil {
			return deleted, fmt.Errorf("delete snapshot %s: %w", oldestID, err)
		}
		deleted++

		// RDS throttles rapid-fire deletes.
		if err := sleep(ctx, s.prunePause); err != nil {
			return deleted, err
		}
	}
}
