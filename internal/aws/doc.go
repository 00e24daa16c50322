// Copyright (c) 2026 Mikhail Vasilenko.
// SPDX-License-Identifier: Apache-2.0

// Package aws centralizes AWS SDK v2 config loading, service client
// construction, and the ARN/account-id validation shared by the commands.
package aws
