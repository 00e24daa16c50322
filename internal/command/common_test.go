// Copyright (c) 2026 Mikhail Vasilenko.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// The count-mismatch notifications are matched on verbatim by monitoring,
// so the exact subjects and message wording are pinned here.

func TestShareCountMismatch(t *testing.T) {
	subject, message := shareCountMismatch(4, 2)

	assert.Equal(t, "DR: source account take shared RDS snapshot error", subject)
	assert.Equal(t,
		"COPY_RDS_SNAPSHOT_COUNT_ERROR sharing RDS snapshots completed with error: "+
			"Expected snapshot count=4 not equal to actual snapshot count=2, exiting",
		message)
}

func TestCopyCountMismatch(t *testing.T) {
	subject, message := copyCountMismatch(3, 0)

	assert.Equal(t, "DR: dst account copy RDS shared snapshot error", subject)
	assert.Equal(t,
		"COPY_RDS_SNAPSHOT_COUNT_ERROR Shared RDS snapshot copying completed with error: "+
			"Expected snapshot count=3 not equal to actual snapshot count=0, exiting",
		message)
}
