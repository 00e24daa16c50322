// Copyright (c) 2026 Mikhail Vasilenko.
// SPDX-License-Identifier: Apache-2.0

package snapshot

import (
	"fmt"
	"regexp"
	"strings"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rds/types"
)

// AllInstances is the pattern value that matches every DB instance.
const AllInstances = "ALL_INSTANCES"

// copyTagKey marks instances opted in to snapshot copying when the filter
// runs in tagged mode.
const copyTagKey = "CopyDBSnapshot"

// Filter selects DB instances by identifier pattern and, optionally, by tag.
//
// The pattern is an RE2 regexp searched against the instance identifier.
// A leading '!' negates the match, which replaces the negative-lookahead
// idiom RE2 has no syntax for (PATTERN='!qa' keeps everything without "qa"
// in the name).
type Filter struct {
	raw        string
	re         *regexp.Regexp
	negate     bool
	taggedOnly bool
}

// NewFilter compiles pattern into a Filter. taggedOnly additionally
// restricts matches to instances tagged CopyDBSnapshot=True.
func NewFilter(pattern string, taggedOnly bool) (Filter, error) {
	f := Filter{raw: pattern, taggedOnly: taggedOnly}

	if pattern == AllInstances || pattern == "" {
		return f, nil
	}

	expr := pattern
	if strings.HasPrefix(expr, "!") {
		f.negate = true
		expr = expr[1:]
	}

	re, err := regexp.Compile(expr)
	if err != nil {
		return Filter{}, fmt.Errorf("invalid instance pattern %q: %w", pattern, err)
	}
	f.re = re

	return f, nil
}

// Pattern returns the raw pattern for logging.
func (f Filter) Pattern() string {
	if f.raw == "" {
		return AllInstances
	}
	return f.raw
}

// Match reports whether the instance passes the pattern and tag checks.
func (f Filter) Match(inst types.DBInstance) bool {
	if f.taggedOnly && !taggedForCopy(inst.TagList) {
		return false
	}

	if f.re == nil {
		return true
	}

	id := awsv2.ToString(inst.DBInstanceIdentifier)
	hit := f.re.MatchString(id)
	if f.negate {
		return !hit
	}
	return hit
}

func taggedForCopy(tags []types.Tag) bool {
	for _, tag := range tags {
		if awsv2.ToString(tag.Key) == copyTagKey &&
			strings.EqualFold(awsv2.ToString(tag.Value), "true") {
			return true
		}
	}
	return false
}
