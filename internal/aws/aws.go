// Copyright (c) 2026 Mikhail Vasilenko.
// SPDX-License-Identifier: Apache-2.0

package aws

import (
	"context"
	"regexp"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	rdsv2 "github.com/aws/aws-sdk-go-v2/service/rds"
	snsv2 "github.com/aws/aws-sdk-go-v2/service/sns"
)

// options holds optional overrides for AWS config loading.
type options struct {
	profile string
	region  string
	retryer func() awsv2.Retryer
}

// Option customizes how AWS config is loaded.
// Default behavior (no options) inherits the shell environment and shared
// config chain (AWS_PROFILE, ~/.aws/config, ~/.aws/credentials, IMDS, etc.).
type Option func(*options)

// WithProfile sets the shared config profile. Defaults to AWS_PROFILE/env chain.
func WithProfile(profile string) Option {
	return func(o *options) { o.profile = profile }
}

// WithRegion sets the region override. Defaults to env/profile/metadata chain.
func WithRegion(region string) Option {
	return func(o *options) { o.region = region }
}

// WithRetryer injects a custom retryer; if not set, SDK defaults are used.
func WithRetryer(newRetryer func() awsv2.Retryer) Option {
	return func(o *options) { o.retryer = newRetryer }
}

// LoadAWSConfig loads AWS SDK v2 config. By default it inherits the shell's
// AWS setup (AWS_PROFILE, shared config, env, IMDS). Options can override
// profile, region, and retryer without changing callers.
func LoadAWSConfig(ctx context.Context, opts ...Option) (awsv2.Config, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	var loadOpts []func(*config.LoadOptions) error
	if o.profile != "" {
		loadOpts = append(loadOpts, config.WithSharedConfigProfile(o.profile))
	}
	if o.region != "" {
		loadOpts = append(loadOpts, config.WithRegion(o.region))
	}
	if o.retryer != nil {
		loadOpts = append(loadOpts, config.WithRetryer(o.retryer))
	}

	return config.LoadDefaultConfig(ctx, loadOpts...)
}

// NewRDS constructs a v2 RDS client from the provided config. Additional
// service options can be supplied via optFns.
func NewRDS(cfg awsv2.Config, optFns ...func(*rdsv2.Options)) *rdsv2.Client {
	return rdsv2.NewFromConfig(cfg, optFns...)
}

// NewSNS constructs a v2 SNS client from the provided config.
func NewSNS(cfg awsv2.Config, optFns ...func(*snsv2.Options)) *snsv2.Client {
	return snsv2.NewFromConfig(cfg, optFns...)
}

var (
	accountIDRe = regexp.MustCompile(`^\d{12}$`)
	kmsKeyARNRe = regexp.MustCompile(`^arn:aws:kms:(.+):\d{12}:key/[a-f0-9-]+$`)
)

// ValidAccountID reports whether s is a 12-digit AWS account id.
func ValidAccountID(s string) bool {
	return accountIDRe.MatchString(s)
}

// ValidKMSKeyARN reports whether s looks like
// arn:aws:kms:<region>:<account_id>:key/<key_id>.
func ValidKMSKeyARN(s string) bool {
	return kmsKeyARNRe.MatchString(s)
}
