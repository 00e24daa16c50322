// Copyright (c) 2026 Mikhail Vasilenko.
// SPDX-License-Identifier: Apache-2.0

// Package notify publishes failure notifications to an SNS topic. In debug
// mode a discarding notifier is used so runs stay observable without
// paging anyone.
package notify

import (
	"context"
	"fmt"

	"github.com/apex/log"
	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

// API is the subset of the SNS client used here.
type API interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// Notifier publishes messages to one topic.
type Notifier struct {
	api      API
	topicARN string
}

// New constructs a Notifier for the given topic.
func New(api API, topicARN string) *Notifier {
	return &Notifier{api: api, topicARN: topicARN}
}

// Discard returns a Notifier that logs instead of publishing.
func Discard() *Notifier {
	return &Notifier{}
}

// Publish sends the message, or logs it when the notifier is discarding.
func (n *Notifier) Publish(ctx context.Context, subject, message string) error {
	if n == nil || n.api == nil || n.topicARN == "" {
		log.Debugf("notification suppressed: %s", subject)
		return nil
	}

	_, err := n.api.Publish(ctx, &sns.PublishInput{
		TopicArn: awsv2.String(n.topicARN),
		Subject:  awsv2.String(subject),
		Message:  awsv2.String(message),
	})
	if err != nil {
		return fmt.Errorf("publish to %s: %w", n.topicARN, err)
	}
	return nil
}
