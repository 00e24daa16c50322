// Copyright (c) 2026 Mikhail Vasilenko.
// SPDX-License-Identifier: Apache-2.0

package snapshot

import (
	"regexp"
	"strings"
)

// recryptedSuffix tags manual copies made with the DR KMS key. The pruning
// and shared-snapshot recognition below all key off this suffix, so it must
// stay stable across releases.
const recryptedSuffix = "-recrypted"

// localCopySuffix tags copies made local to the destination account.
const localCopySuffix = "-copy"

// sharedSnapshotARNRe matches the ARN prefix snapshots carry in their
// identifier when they were shared from another account.
var sharedSnapshotARNRe = regexp.MustCompile(`^arn:aws:rds:(.+):\d{12}:snapshot:`)

// RecryptTargetID derives the manual copy identifier for an automated
// snapshot. Automated snapshots are named "rds:<instance>-<timestamp>"; the
// "rds:" prefix is not a legal identifier character sequence, so it is
// stripped before the suffix is appended.
func RecryptTargetID(sourceID string) string {
	id := sourceID
	if strings.Contains(id, ":") {
		id = strings.Split(id, ":")[1]
	}
	return id + recryptedSuffix
}

// LocalCopyID derives the destination-account identifier for a shared
// snapshot, stripping the source ARN prefix.
func LocalCopyID(sharedID string) string {
	return sharedSnapshotARNRe.ReplaceAllString(sharedID, "") + localCopySuffix
}

// IsSharedRecrypted reports whether the identifier names a re-encrypted
// snapshot shared from another account: the ARN prefix is present and the
// identifier ends in the recrypted suffix.
func IsSharedRecrypted(id string) bool {
	return strings.HasSuffix(id, "recrypted") && sharedSnapshotARNRe.MatchString(id)
}
