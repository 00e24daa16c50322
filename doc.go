// Copyright (c) 2026 Mikhail Vasilenko.
// SPDX-License-Identifier: Apache-2.0

// dr-rds-share-snapshot is the main package for the cross-account RDS
// snapshot disaster recovery tool. It wires the CLI, delegates to internal
// packages, and serves as the entry point.
package main
