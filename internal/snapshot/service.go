// Copyright (c) 2026 Mikhail Vasilenko.
// SPDX-License-Identifier: Apache-2.0

package snapshot

import (
	"context"
	"fmt"
	"time"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rds"
	"github.com/aws/aws-sdk-go-v2/service/rds/types"
)

// API is the subset of the RDS client this package calls. The concrete
// *rds.Client satisfies it; tests substitute a fake.
type API interface {
	DescribeDBInstances(ctx context.Context, params *rds.DescribeDBInstancesInput, optFns ...func(*rds.Options)) (*rds.DescribeDBInstancesOutput, error)
	DescribeDBSnapshots(ctx context.Context, params *rds.DescribeDBSnapshotsInput, optFns ...func(*rds.Options)) (*rds.DescribeDBSnapshotsOutput, error)
	CopyDBSnapshot(ctx context.Context, params *rds.CopyDBSnapshotInput, optFns ...func(*rds.Options)) (*rds.CopyDBSnapshotOutput, error)
	ModifyDBSnapshotAttribute(ctx context.Context, params *rds.ModifyDBSnapshotAttributeInput, optFns ...func(*rds.Options)) (*rds.ModifyDBSnapshotAttributeOutput, error)
	DeleteDBSnapshot(ctx context.Context, params *rds.DeleteDBSnapshotInput, optFns ...func(*rds.Options)) (*rds.DeleteDBSnapshotOutput, error)
}

// options holds optional overrides for Service construction.
type options struct {
	pollInterval time.Duration
	prunePause   time.Duration
}

// Option customizes a Service.
type Option func(*options)

// WithPollInterval overrides the availability poll cadence (default 10s).
func WithPollInterval(d time.Duration) Option {
	return func(o *options) { o.pollInterval = d }
}

// WithPrunePause overrides the pause between prune deletions (default 1s).
func WithPrunePause(d time.Duration) Option {
	return func(o *options) { o.prunePause = d }
}

// Service drives the snapshot lifecycle against one RDS account/region.
type Service struct {
	api          API
	pollInterval time.Duration
	prunePause   time.Duration
}

// NewService constructs a Service around the given RDS API.
func NewService(api API, opts ...Option) *Service {
	o := options{
		pollInterval: 10 * time.Second,
		prunePause:   time.Second,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &Service{
		api:          api,
		pollInterval: o.pollInterval,
		prunePause:   o.prunePause,
	}
}

// Instances lists all DB instances in the account and returns those
// accepted by the filter.
func (s *Service) Instances(ctx context.Context, f Filter) ([]types.DBInstance, error) {
	var matched []types.DBInstance

	p := rds.NewDescribeDBInstancesPaginator(s.api, &rds.DescribeDBInstancesInput{})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("describe db instances: %w", err)
		}
		for _, inst := range page.DBInstances {
			if f.Match(inst) {
				matched = append(matched, inst)
			}
		}
	}

	return matched, nil
}

// SharedRecrypted lists snapshots visible to the account including shared
// ones, and returns the subset that are re-encrypted snapshots shared from
// another account. total is the size of the unfiltered listing, so callers
// can tell "nothing shared at all" apart from "nothing matched".
func (s *Service) SharedRecrypted(ctx context.Context) (matched []types.DBSnapshot, total int, err error) {
	p := rds.NewDescribeDBSnapshotsPaginator(s.api, &rds.DescribeDBSnapshotsInput{
		IncludeShared: awsv2.Bool(true),
	})
	for p.HasMorePages() {
		page, pageErr := p.NextPage(ctx)
		if pageErr != nil {
			return nil, 0, fmt.Errorf("describe shared db snapshots: %w", pageErr)
		}
		total += len(page.DBSnapshots)
		for _, snap := range page.DBSnapshots {
			if IsSharedRecrypted(awsv2.ToString(snap.DBSnapshotIdentifier)) {
				matched = append(matched, snap)
			}
		}
	}

	return matched, total, nil
}
