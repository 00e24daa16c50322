// Copyright (c) 2026 Mikhail Vasilenko.
// SPDX-License-Identifier: Apache-2.0

package snapshot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecryptTargetID(t *testing.T) {
	tests := []struct {
		name     string
		sourceID string
		want     string
	}{
		{
			name:     "automated snapshot with rds prefix",
			sourceID: "rds:orders-prod-2026-08-29-03-10",
			want:     "orders-prod-2026-08-29-03-10-recrypted",
		},
		{
			name:     "manual snapshot without prefix",
			sourceID: "orders-prod-manual",
			want:     "orders-prod-manual-recrypted",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RecryptTargetID(tt.sourceID))
		})
	}
}

func TestLocalCopyID(t *testing.T) {
	tests := []struct {
		name     string
		sharedID string
		want     string
	}{
		{
			name:     "shared arn identifier",
			sharedID: "arn:aws:rds:us-east-1:123456789012:snapshot:orders-prod-2026-08-29-03-10-recrypted",
			want:     "orders-prod-2026-08-29-03-10-recrypted-copy",
		},
		{
			name:     "plain identifier is only suffixed",
			sharedID: "orders-prod-recrypted",
			want:     "orders-prod-recrypted-copy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LocalCopyID(tt.sharedID))
		})
	}
}

func TestIsSharedRecrypted(t *testing.T) {
	tests := []struct {
		name string
		id   string
		want bool
	}{
		{
			name: "shared recrypted",
			id:   "arn:aws:rds:us-east-1:123456789012:snapshot:orders-recrypted",
			want: true,
		},
		{
			name: "shared but not recrypted",
			id:   "arn:aws:rds:us-east-1:123456789012:snapshot:orders-nightly",
			want: false,
		},
		{
			name: "recrypted but local",
			id:   "orders-recrypted",
			want: false,
		},
		{
			name: "recrypted copy does not re-match",
			id:   "arn:aws:rds:us-east-1:123456789012:snapshot:orders-recrypted-copy",
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsSharedRecrypted(tt.id))
		})
	}
}
